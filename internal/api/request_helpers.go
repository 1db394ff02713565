package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
)

// getIdentity extracts the authenticated caller from the request context.
// It writes a 401 response and returns false when no identity is present,
// which only happens if a route is mounted without the auth middleware.
func getIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := shared.GetIdentity(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated",
			shared.WithHeader("WWW-Authenticate", "Bearer"))
		return domain.Identity{}, false
	}
	return identity, true
}

// getPathID extracts an integer ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): A validation error if the parameter is missing or not an integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	return id, nil
}

// parseTaskQuery reads the listing parameters from the query string.
// Absent parameters keep their defaults; empty status, priority and search
// values mean no filter.
func parseTaskQuery(values url.Values) (service.TaskQuery, error) {
	query := service.NewTaskQuery()

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return service.TaskQuery{}, domain.NewValidationError("page", "must be an integer", domain.ErrInvalidFormat)
		}
		query.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return service.TaskQuery{}, domain.NewValidationError("limit", "must be an integer", domain.ErrInvalidFormat)
		}
		query.Limit = limit
	}

	if raw := values.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		query.Status = &status
	}

	if raw := values.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		query.Priority = &priority
	}

	if raw := values.Get("my_tasks"); raw != "" {
		myTasks, ok := parseBool(raw)
		if !ok {
			return service.TaskQuery{}, domain.NewValidationError("my_tasks", "must be a boolean", domain.ErrInvalidFormat)
		}
		query.MyTasks = myTasks
	}

	query.Search = values.Get("search")

	return query, nil
}

// parseBool accepts the usual spellings of a boolean query flag.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
