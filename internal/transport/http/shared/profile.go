package shared

import (
	"errors"
	"net/http"

	"staffhub/internal/domain/directory"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

// ResolveEmployee loads the caller's employee record and writes the failure
// response itself when there is none. Handlers check the bool and return.
func ResolveEmployee(w http.ResponseWriter, r *http.Request, dir *directory.Service) (directory.Employee, bool) {
	reqID := middleware.GetRequestID(r.Context())
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return directory.Employee{}, false
	}

	employee, err := dir.ResolveProfile(r.Context(), claims.Account())
	if errors.Is(err, directory.ErrNoProfile) {
		api.Fail(w, http.StatusNotFound, "no_profile", "no employee record is linked to this account", reqID)
		return directory.Employee{}, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to resolve profile", reqID)
		return directory.Employee{}, false
	}
	return employee, true
}
