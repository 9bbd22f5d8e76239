// Стандартизированный формат ошибок HTTP-слоя.
//
// На вход — ошибка бизнес-логики, на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе об ошибке.
// Outcome заполняется только у ингест-эндпойнтов: частичный прогресс
// неудачного вызова не отбрасывается (см. WriteFetchError).
type ErrorResponse struct {
	Error   APIError         `json:"error"`
	Outcome *outcomeResponse `json:"outcome,omitempty"`
}

// ToHTTP конвертирует ошибку бизнес-логики в HTTP-статус и код для фронта.
//
// Маппинг:
//   - ErrNotFound -> 404
//   - ErrInvalidArgument -> 400
//   - ErrUpstreamUnavailable -> 502 (источник недоступен — не «нет новых записей»)
//   - ErrGenerationFailed -> 502
//   - DeadlineExceeded/Canceled -> 504/499
//   - прочее -> 500/internal
func ToHTTP(err error) (int, APIError) {
	switch {
	case err == nil:
		// Программная ошибка вызова: не маскируем баг "успешным" ответом.
		return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "not found"}
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, APIError{Code: "invalid_argument", Message: "invalid argument"}
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return http.StatusBadGateway, APIError{Code: "upstream_unavailable", Message: "upstream source unavailable"}
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway, APIError{Code: "generation_failed", Message: "answer generation failed"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, APIError{Code: "deadline_exceeded", Message: "deadline exceeded"}
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, APIError{Code: "canceled", Message: "canceled"}
	default:
		return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
	}
}

// Нестандартный код, часто используемый для "клиент закрыл соединение".
const statusClientClosedRequest = 499

// WriteError пишет корректный статус/тело, добавляет request_id из заголовка.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorResponse(w, r, err, nil)
}

// WriteFetchError — вариант для ингест-эндпойнтов: прикладывает частичный
// результат, чтобы «ничего нового, источник недоступен» нельзя было
// перепутать с «ничего нового, всё актуально».
func WriteFetchError(w http.ResponseWriter, r *http.Request, err error, outcome *models.FetchOutcome) {
	writeErrorResponse(w, r, err, outcome)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, outcome *models.FetchOutcome) {
	status, apiErr := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		apiErr.RequestID = rid
	}

	resp := ErrorResponse{Error: apiErr}
	if outcome != nil {
		oc := outcomeFromModel(outcome)
		resp.Outcome = &oc
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
