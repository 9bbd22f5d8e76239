package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает обработку запроса дедлайном d. Сервисный слой
// видит его через ctx: затянувшийся ингест вернёт частичный прогресс.
// d <= 0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				// Дедлайн уже установлен выше по цепочке.
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
