package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
)

// QueryInt parses an optional integer query parameter; an absent value yields
// zero. Range rules live on the caller's tagged struct, not here.
func QueryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// RequiredQuery returns the trimmed query value or a validation error naming
// the missing parameter.
func RequiredQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing required query parameter").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
