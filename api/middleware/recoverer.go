package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
	"github.com/angelmondragon/stockroom/pkg/logger"
)

// Recoverer turns handler panics into a generic 500 response.
func Recoverer(rw *responses.Writer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					rw.Error(ctx, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
