package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/platform/querier"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Account struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	EmployeeID  string     `json:"employeeId,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Account, string, error) {
	var account Account
	var hash string
	var employeeID *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, employee_id, is_active, created_at, last_login_at
    FROM users
    WHERE lower(email) = lower($1)
  `, email).Scan(&account.ID, &account.Email, &hash, &account.Role, &employeeID, &account.IsActive, &account.CreatedAt, &account.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, "", ErrNotFound
	}
	if err != nil {
		return Account{}, "", err
	}
	if employeeID != nil {
		account.EmployeeID = *employeeID
	}
	return account, hash, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Account, error) {
	var account Account
	var employeeID *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, role, employee_id, is_active, created_at, last_login_at
    FROM users
    WHERE id = $1
  `, id).Scan(&account.ID, &account.Email, &account.Role, &employeeID, &account.IsActive, &account.CreatedAt, &account.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	if employeeID != nil {
		account.EmployeeID = *employeeID
	}
	return account, nil
}

func (s *Store) List(ctx context.Context) ([]Account, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, role, employee_id, is_active, created_at, last_login_at
    FROM users
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var account Account
		var employeeID *string
		if err := rows.Scan(&account.ID, &account.Email, &account.Role, &employeeID, &account.IsActive, &account.CreatedAt, &account.LastLoginAt); err != nil {
			return nil, err
		}
		if employeeID != nil {
			account.EmployeeID = *employeeID
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *Store) Create(ctx context.Context, email, passwordHash, role, employeeID string) (string, error) {
	var id string
	var link any
	if employeeID != "" {
		link = employeeID
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id, is_active)
    VALUES ($1, $2, $3, $4, false)
    RETURNING id
  `, email, passwordHash, role, link).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	return id, nil
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) LinkEmployee(ctx context.Context, id, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET employee_id = $1 WHERE id = $2", employeeID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", id)
	return err
}

func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
