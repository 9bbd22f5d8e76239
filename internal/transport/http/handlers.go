package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/service"
)

// LetterService — всё, что нужно HTTP-слою от бизнес-логики.
// Интерфейс на стороне потребителя: в тестах подменяется стабом.
type LetterService interface {
	FetchNew(ctx context.Context) (*models.FetchOutcome, error)
	FetchOlder(ctx context.Context) (*models.FetchOutcome, error)
	ListLetters(ctx context.Context, opts models.ListOptions) (*models.LetterPage, error)
	LetterByID(ctx context.Context, id string) (*models.Letter, error)
	QuestionsByLetter(ctx context.Context, letterID string) ([]models.Question, error)
	AskQuestion(ctx context.Context, letterID, question string) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// Handlers агрегирует зависимости HTTP-эндпойнтов.
type Handlers struct {
	service LetterService
}

func NewHandlers(s LetterService) *Handlers {
	return &Handlers{service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// FetchNewLetters — POST /letters/fetch-new.
// Перечитывает первую страницу источника и сохраняет новые записи.
func (h *Handlers) FetchNewLetters(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.FetchNew(r.Context())
	if err != nil {
		WriteFetchError(w, r, err, outcome)
		return
	}

	writeJSON(w, http.StatusOK, outcomeFromModel(outcome))
}

// FetchOlderLetters — POST /letters/fetch-more.
// Забирает следующую непройденную страницу архива.
func (h *Handlers) FetchOlderLetters(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.FetchOlder(r.Context())
	if err != nil {
		WriteFetchError(w, r, err, outcome)
		return
	}

	writeJSON(w, http.StatusOK, outcomeFromModel(outcome))
}

// ListLetters — GET /letters?limit=&offset=.
func (h *Handlers) ListLetters(w http.ResponseWriter, r *http.Request) {
	var opts models.ListOptions

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		opts.Limit = int32(n)
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			// Отрицательное смещение отклоняем до вычисления has_more:
			// сервис срезал бы его в ноль, и ответ разошёлся бы с запросом.
			WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		opts.Offset = int32(n)
	}

	page, err := h.service.ListLetters(r.Context(), opts)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	resp := letterListResponse{
		Letters: make([]letterResponse, 0, len(page.Items)),
		Total:   page.Total,
		HasMore: int64(opts.Offset)+int64(len(page.Items)) < page.Total,
	}
	for i := range page.Items {
		resp.Letters = append(resp.Letters, letterFromModel(&page.Items[i], false))
	}

	writeJSON(w, http.StatusOK, resp)
}

// LetterByID — GET /letters/{id}: запись вместе с историей вопросов.
func (h *Handlers) LetterByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	letter, err := h.service.LetterByID(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	questions, err := h.service.QuestionsByLetter(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	resp := letterDetailResponse{
		Letter:    letterFromModel(letter, true),
		Questions: make([]questionResponse, 0, len(questions)),
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, questionFromModel(&questions[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AskQuestion — POST /letters/{id}/questions.
func (h *Handlers) AskQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var req askQuestionRequest
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	question, err := h.service.AskQuestion(r.Context(), id, req.Question)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, questionFromModel(question))
}

// DeleteQuestion — DELETE /questions/{id}.
func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health — GET /healthz: liveness-проба без обращения к зависимостям.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
