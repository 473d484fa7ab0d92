package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
)

// ParseQueryChoice reads an optional query parameter that must be one of
// allowed, compared case-insensitively. An absent parameter yields "".
func ParseQueryChoice(r *http.Request, key string, allowed ...string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", nil
	}
	for _, choice := range allowed {
		if strings.EqualFold(raw, choice) {
			return choice, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported query parameter value").
		WithDetails(map[string]any{"field": key, "allowed": allowed})
}
