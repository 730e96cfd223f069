package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"health-records-portal/internal/platform/logger"
)

// Recover reemplaza a chi/middleware.Recoverer: loguea el panic con stack
// y responde 500 en JSON en vez de texto plano.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": chimw.GetReqID(r.Context()),
					"stack":      string(debug.Stack()),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
