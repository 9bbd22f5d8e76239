// log пробрасывает request-scoped slog.Logger через context.
//
// HTTP-мидлвар кладёт логгер с request_id в контекст запроса (Into),
// а сервис, скрейпер и хранилище достают его через From, не получая
// логгер явным аргументом.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с прикреплённым логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер запроса. Если в контексте его нет
// (фоновые задачи, тесты), используется slog.Default().
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}
