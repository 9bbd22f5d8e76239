package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/service"
)

// stubService — управляемая подмена бизнес-логики для хендлеров.
type stubService struct {
	fetchNewOutcome   *models.FetchOutcome
	fetchNewErr       error
	fetchOlderOutcome *models.FetchOutcome
	fetchOlderErr     error

	page       *models.LetterPage
	gotOpts    models.ListOptions
	listCalled bool
	listErr    error

	letter    *models.Letter
	letterErr error

	questions    []models.Question
	questionsErr error

	asked    *models.Question
	askedErr error

	deleteErr error
}

func (s *stubService) FetchNew(ctx context.Context) (*models.FetchOutcome, error) {
	return s.fetchNewOutcome, s.fetchNewErr
}

func (s *stubService) FetchOlder(ctx context.Context) (*models.FetchOutcome, error) {
	return s.fetchOlderOutcome, s.fetchOlderErr
}

func (s *stubService) ListLetters(ctx context.Context, opts models.ListOptions) (*models.LetterPage, error) {
	s.listCalled = true
	s.gotOpts = opts
	return s.page, s.listErr
}

func (s *stubService) LetterByID(ctx context.Context, id string) (*models.Letter, error) {
	return s.letter, s.letterErr
}

func (s *stubService) QuestionsByLetter(ctx context.Context, letterID string) ([]models.Question, error) {
	return s.questions, s.questionsErr
}

func (s *stubService) AskQuestion(ctx context.Context, letterID, question string) (*models.Question, error) {
	return s.asked, s.askedErr
}

func (s *stubService) DeleteQuestion(ctx context.Context, id string) error {
	return s.deleteErr
}

func newTestRouter(t *testing.T, svc LetterService) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(svc, Options{Logger: logger, BasePath: "/api"})
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestListLetters_OK — has_more рассчитывается из offset и total.
func TestListLetters_OK(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	svc := &stubService{page: &models.LetterPage{
		Items: []models.Letter{
			{ID: uuid.New(), Title: "Alpha", URL: "https://example.org/a", PublishedAt: published, Summary: "s", Content: "full", CreatedAt: created},
		},
		Total: 10,
	}}

	w := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/letters?limit=1&offset=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp letterListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Letters, 1)
	require.EqualValues(t, 10, resp.Total)
	require.True(t, resp.HasMore) // 3 + 1 < 10

	require.EqualValues(t, 1, svc.gotOpts.Limit)
	require.EqualValues(t, 3, svc.gotOpts.Offset)

	// В списке полный текст не отдаётся, дата публикации в RFC3339.
	require.Empty(t, resp.Letters[0].Content)
	require.NotNil(t, resp.Letters[0].PublishedAt)
	require.Equal(t, "2024-05-01T00:00:00Z", *resp.Letters[0].PublishedAt)
}

// TestListLetters_LastPage — конец выдачи: has_more=false.
func TestListLetters_LastPage(t *testing.T) {
	t.Parallel()

	svc := &stubService{page: &models.LetterPage{
		Items: []models.Letter{{ID: uuid.New(), Title: "A", URL: "https://example.org/a"}},
		Total: 4,
	}}

	w := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/letters?limit=10&offset=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp letterListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.HasMore)

	// Неизвестная дата публикации сериализуется как null.
	require.Nil(t, resp.Letters[0].PublishedAt)
}

// TestListLetters_BadLimit — нечисловой limit отклоняется.
func TestListLetters_BadLimit(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestRouter(t, &stubService{}), http.MethodGet, "/api/letters?limit=abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestListLetters_NegativeParams — отрицательные limit/offset отклоняются
// до обращения к сервису: срезанный в ноль offset исказил бы has_more.
func TestListLetters_NegativeParams(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodGet, "/api/letters?offset=-5", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/letters?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.False(t, svc.listCalled)
}

// TestFetchNew_OK — итог ингеста отдаётся как есть.
func TestFetchNew_OK(t *testing.T) {
	t.Parallel()

	svc := &stubService{fetchNewOutcome: &models.FetchOutcome{
		Attempted: 5, Inserted: 3, SkippedDuplicates: 2, HasMore: true,
	}}

	w := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/letters/fetch-new", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp outcomeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 5, resp.Attempted)
	require.Equal(t, 3, resp.Inserted)
	require.Equal(t, 2, resp.SkippedDuplicates)
	require.True(t, resp.HasMore)
	require.NotNil(t, resp.Errors)
}

// TestFetchNew_UpstreamDown — 502 с машиночитаемым кодом: «источник
// недоступен» не маскируется под «нет новых записей».
func TestFetchNew_UpstreamDown(t *testing.T) {
	t.Parallel()

	svc := &stubService{fetchNewErr: service.ErrUpstreamUnavailable}

	w := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/letters/fetch-new", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "upstream_unavailable", resp.Error.Code)
}

// TestFetchOlder_PartialProgress — прерванный дедлайном вызов отдаёт
// ошибку вместе с накопленным прогрессом.
func TestFetchOlder_PartialProgress(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		fetchOlderOutcome: &models.FetchOutcome{Attempted: 10, Inserted: 4},
		fetchOlderErr:     context.DeadlineExceeded,
	}

	w := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/letters/fetch-more", "")
	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "deadline_exceeded", resp.Error.Code)
	require.NotNil(t, resp.Outcome)
	require.Equal(t, 4, resp.Outcome.Inserted)
}

// TestLetterByID_OK — деталь вместе с историей вопросов.
func TestLetterByID_OK(t *testing.T) {
	t.Parallel()

	letterID := uuid.New()
	svc := &stubService{
		letter: &models.Letter{ID: letterID, Title: "Alpha", URL: "https://example.org/a", Content: "full text"},
		questions: []models.Question{
			{ID: uuid.New(), LetterID: letterID, Question: "q", Answer: "a"},
		},
	}

	w := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/letters/"+letterID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp letterDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Alpha", resp.Letter.Title)
	require.Equal(t, "full text", resp.Letter.Content)
	require.Len(t, resp.Questions, 1)
}

// TestLetterByID_NotFound — 404 с кодом not_found.
func TestLetterByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := &stubService{letterErr: service.ErrNotFound}

	w := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/letters/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

// TestAskQuestion_OK — 201 и сохранённая пара в теле.
func TestAskQuestion_OK(t *testing.T) {
	t.Parallel()

	letterID := uuid.New()
	svc := &stubService{asked: &models.Question{
		ID:       uuid.New(),
		LetterID: letterID,
		Question: "why?",
		Answer:   "because",
	}}

	w := doRequest(t, newTestRouter(t, svc), http.MethodPost,
		"/api/letters/"+letterID.String()+"/questions", `{"question":"why?"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp questionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "because", resp.Answer)
}

// TestAskQuestion_BadRequest — пустой вопрос и неизвестные поля отклоняются.
func TestAskQuestion_BadRequest(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubService{})
	target := "/api/letters/" + uuid.NewString() + "/questions"

	w := doRequest(t, router, http.MethodPost, target, `{"question":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, target, `{"question":"ok","extra":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, target, `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestAskQuestion_GenerationFailed — сбой генерации мапится в 502.
func TestAskQuestion_GenerationFailed(t *testing.T) {
	t.Parallel()

	svc := &stubService{askedErr: service.ErrGenerationFailed}

	w := doRequest(t, newTestRouter(t, svc), http.MethodPost,
		"/api/letters/"+uuid.NewString()+"/questions", `{"question":"why?"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
}

// TestDeleteQuestion — 204 при успехе, 404 при отсутствии.
func TestDeleteQuestion(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestRouter(t, &stubService{}), http.MethodDelete,
		"/api/questions/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNoContent, w.Code)

	svc := &stubService{deleteErr: service.ErrNotFound}
	w = doRequest(t, newTestRouter(t, svc), http.MethodDelete,
		"/api/questions/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

// TestHealthz — liveness вне BasePath.
func TestHealthz(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestRouter(t, &stubService{}), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
}

// TestRequestID_Propagated — входящий X-Request-Id возвращается в ответе.
func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubService{page: &models.LetterPage{}})

	req := httptest.NewRequest(http.MethodGet, "/api/letters", nil)
	req.Header.Set("X-Request-Id", "req-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, "req-7", w.Header().Get("X-Request-Id"))
}
