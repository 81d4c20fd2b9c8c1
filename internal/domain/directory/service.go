package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"staffhub/internal/domain/auth"
)

var ErrNotFound = errors.New("employee not found")

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

const employeeColumns = `
  id, first_name, last_name, email, department, position,
  employee_code, COALESCE(profile_picture, ''), is_active, created_at
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department,
		&e.Position, &e.EmployeeCode, &e.ProfilePicture, &e.IsActive, &e.CreatedAt)
	return e, err
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, int, error) {
	var total int
	if err := s.Store.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.Store.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Service) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_active
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	e, err := scanEmployee(s.Store.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Service) Create(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, department, position, employee_code, profile_picture, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),true)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.EmployeeCode, e.ProfilePicture).Scan(&id)
	return id, err
}

func (s *Service) Update(ctx context.Context, id string, e Employee) error {
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, department = $4,
        position = $5, employee_code = $6, profile_picture = NULLIF($7, '')
    WHERE id = $8
  `, e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.EmployeeCode, e.ProfilePicture, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := s.Store.DB.Exec(ctx, "UPDATE employees SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Departments(ctx context.Context) ([]string, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT DISTINCT department
    FROM employees
    WHERE department <> ''
    ORDER BY department
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// ResolveProfile loads the employee record behind an account using the
// resolver precedence. Admin accounts with no record get a placeholder
// profile; everyone else gets ErrNoProfile.
func (s *Service) ResolveProfile(ctx context.Context, account auth.Account) (Employee, error) {
	candidates, err := s.resolveCandidates(ctx, account)
	if err != nil {
		return Employee{}, err
	}

	employee, err := Resolve(account, candidates)
	if errors.Is(err, ErrNoProfile) && account.Role == auth.RoleAdmin {
		return Placeholder(account), nil
	}
	return employee, err
}

func (s *Service) resolveCandidates(ctx context.Context, account auth.Account) ([]Employee, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE ($1 <> '' AND (id::text = $1 OR employee_code = $1))
       OR lower(email) = lower($2)
  `, account.EmployeeID, account.Email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
