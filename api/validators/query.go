package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// ParseQueryInt64 reads an optional integer query parameter. ok is false when
// the parameter is absent or blank.
func ParseQueryInt64(r *http.Request, key string) (value int64, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, true, nil
}

// ParsePathID reads a numeric chi URL parameter. The route pattern already
// restricts it to digits, so the only failure left is overflow, which is
// reported as a missing resource.
func ParsePathID(r *http.Request, key string, notFound string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFound)
	}
	return id, nil
}
