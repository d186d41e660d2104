package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"gostore/internal/api/response"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
)

// RateLimiter limita requisições por IP em janela fixa, usando o contador do cache.
// scope separa os contadores de rotas diferentes (e.g. "signin").
// Falha do cache não bloqueia a requisição.
func RateLimiter(client cache.Client, scope string, limit int, window time.Duration, rw *response.Writer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + scope + ":" + ip

			count, err := client.Incr(r.Context(), key, window)
			if err != nil {
				log.Warn("Falha no contador de rate limit; requisição liberada.", map[string]interface{}{"key": key, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				rw.Error(w, r, apperror.NewRateLimitError("Muitas requisições. Tente novamente mais tarde."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
