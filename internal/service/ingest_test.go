package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-letter-insights/internal/config"
	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
	"github.com/pribylovaa/go-letter-insights/mocks"
)

// stubSource — управляемый Source для тестов ингеста: страницы и тексты
// задаются заранее, запросы страниц фиксируются.
type stubSource struct {
	mu         sync.Mutex
	pages      map[int]*ListResult
	pageErr    map[int]error
	content    map[string]string
	contentErr map[string]error
	listCalls  []int
}

func newStubSource() *stubSource {
	return &stubSource{
		pages:      make(map[int]*ListResult),
		pageErr:    make(map[int]error),
		content:    make(map[string]string),
		contentErr: make(map[string]error),
	}
}

func (s *stubSource) ListPage(ctx context.Context, page int) (*ListResult, error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, page)
	s.mu.Unlock()

	if err, ok := s.pageErr[page]; ok {
		return nil, err
	}
	if res, ok := s.pages[page]; ok {
		return res, nil
	}
	return &ListResult{}, nil
}

func (s *stubSource) LetterContent(ctx context.Context, url string) (string, error) {
	if err, ok := s.contentErr[url]; ok {
		return "", err
	}
	return s.content[url], nil
}

func (s *stubSource) calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.listCalls...)
}

// newIngestService — фабрика сервиса для тестов ингеста (LLM не участвует).
func newIngestService(t *testing.T, st storage.Storage, src Source) *Service {
	t.Helper()
	return New(st, src, nil, config.Config{})
}

func letter(title, url string) models.Letter {
	return models.Letter{Title: title, URL: url, Summary: title + " summary"}
}

// TestFetchNew_AllNew — все записи первой страницы новые: каждая проверяется,
// догружается и сохраняется.
func TestFetchNew_AllNew(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
		letter("B", "https://example.org/2024/02/b"),
	}}
	src.content["https://example.org/2024/01/a"] = "full text a"
	src.content["https://example.org/2024/02/b"] = "full text b"

	st.EXPECT().LetterExists(gomock.Any(), "https://example.org/2024/01/a").Return(false, nil)
	st.EXPECT().LetterExists(gomock.Any(), "https://example.org/2024/02/b").Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil).Times(2)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, outcome.Attempted)
	require.Equal(t, 2, outcome.Inserted)
	require.Equal(t, 0, outcome.SkippedDuplicates)
	require.Empty(t, outcome.Errors)
	require.True(t, outcome.HasMore)
	require.Equal(t, []int{1}, src.calls())
}

// TestFetchNew_PartialDuplicates — 5 записей, 2 уже существуют:
// вставляются ровно 3, дубликаты не перезаписываются.
func TestFetchNew_PartialDuplicates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	urls := []string{
		"https://example.org/2024/01/a",
		"https://example.org/2024/02/b",
		"https://example.org/2024/03/c",
		"https://example.org/2024/04/d",
		"https://example.org/2024/05/e",
	}
	existing := map[string]bool{urls[1]: true, urls[3]: true}

	src := newStubSource()
	var letters []models.Letter
	for i, u := range urls {
		letters = append(letters, letter(string(rune('A'+i)), u))
		src.content[u] = "text " + u
	}
	src.pages[1] = &ListResult{Letters: letters}

	for _, u := range urls {
		st.EXPECT().LetterExists(gomock.Any(), u).Return(existing[u], nil)
	}
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil).Times(3)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, outcome.Attempted)
	require.Equal(t, 3, outcome.Inserted)
	require.Equal(t, 2, outcome.SkippedDuplicates)
	require.Empty(t, outcome.Errors)
}

// TestFetchNew_SecondRun_AllDuplicates — повторный вызов на той же странице
// идемпотентен: всё уже существует, вставок нет.
func TestFetchNew_SecondRun_AllDuplicates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
		letter("B", "https://example.org/2024/02/b"),
	}}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, outcome.Attempted)
	require.Equal(t, 0, outcome.Inserted)
	require.Equal(t, 2, outcome.SkippedDuplicates)
}

// TestFetchNew_UpstreamError — страница не загрузилась: наружу уходит
// ErrUpstreamUnavailable, результата нет.
func TestFetchNew_UpstreamError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pageErr[1] = errors.New("fetch list page: http status 503")

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.Nil(t, outcome)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

// TestFetchNew_SaveRace — LetterExists вернул false, но вставку выиграл
// конкурентный вызов: ErrAlreadyExists трактуется как дубликат, не сбой.
func TestFetchNew_SaveRace(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
	}}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.Nil, storage.ErrAlreadyExists)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Attempted)
	require.Equal(t, 0, outcome.Inserted)
	require.Equal(t, 1, outcome.SkippedDuplicates)
	require.Empty(t, outcome.Errors)
}

// TestFetchNew_ContentFetchFailure_NonFatal — страница детали не загрузилась:
// запись сохраняется с анонсом, сбой фиксируется в Errors.
func TestFetchNew_ContentFetchFailure_NonFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
	}}
	src.contentErr["https://example.org/2024/01/a"] = errors.New("detail fetch: timeout")

	var saved models.Letter
	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *models.Letter) (uuid.UUID, error) {
			saved = *l
			return uuid.New(), nil
		})

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)
	require.Len(t, outcome.Errors, 1)
	require.Equal(t, models.StageFetchContent, outcome.Errors[0].Stage)
	// Фолбэк на анонс.
	require.Equal(t, "A summary", saved.Content)
}

// TestFetchNew_DroppedRecord — запись без заголовка отбрасывается:
// фиксируется ошибка извлечения, в сторадж запись не идёт.
func TestFetchNew_DroppedRecord(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		{Title: "   ", URL: "https://example.org/2024/01/a"},
		letter("B", "https://example.org/2024/02/b"),
	}}

	st.EXPECT().LetterExists(gomock.Any(), "https://example.org/2024/02/b").Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, outcome.Attempted)
	require.Equal(t, 1, outcome.Inserted)
	require.Len(t, outcome.Errors, 1)
	require.Equal(t, models.StageExtract, outcome.Errors[0].Stage)
}

// TestFetchNew_ExtractErrorsPropagated — нефатальные ошибки извлечения
// страницы попадают в итог вместе с результатами вставки.
func TestFetchNew_ExtractErrorsPropagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{
		Letters: []models.Letter{letter("A", "https://example.org/2024/01/a")},
		Errors: []models.IngestError{
			{URL: "https://example.org/2024/09/x", Stage: models.StageExtract, Message: "missing title"},
		},
	}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)
	require.Len(t, outcome.Errors, 1)
	require.Equal(t, "missing title", outcome.Errors[0].Message)
}

// TestFetchNew_StorageErrorPerRecord — сбой стораджа по одной записи
// не прерывает обработку остальных.
func TestFetchNew_StorageErrorPerRecord(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
		letter("B", "https://example.org/2024/02/b"),
	}}

	st.EXPECT().LetterExists(gomock.Any(), "https://example.org/2024/01/a").
		Return(false, errors.New("connection reset"))
	st.EXPECT().LetterExists(gomock.Any(), "https://example.org/2024/02/b").Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)
	require.Len(t, outcome.Errors, 1)
	require.Equal(t, models.StageStore, outcome.Errors[0].Stage)
}

// TestFetchNew_DeadlineTruncated — истёкший контекст прерывает пачку,
// но накопленный прогресс возвращается вместе с ошибкой.
func TestFetchNew_DeadlineTruncated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{
		letter("A", "https://example.org/2024/01/a"),
		letter("B", "https://example.org/2024/02/b"),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchNew(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, outcome)
	require.Equal(t, 2, outcome.Attempted)
	require.Equal(t, 0, outcome.Inserted)
}

// TestFetchOlder_StartsAtPageTwo — архивный обход начинается со второй
// страницы и монотонно продвигается после успешной обработки.
func TestFetchOlder_StartsAtPageTwo(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[2] = &ListResult{Letters: []models.Letter{letter("A", "https://example.org/2023/01/a")}}
	src.pages[3] = &ListResult{Letters: []models.Letter{letter("B", "https://example.org/2022/01/b")}}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil).Times(2)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)
	require.True(t, outcome.HasMore)

	outcome, err = svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)

	require.Equal(t, []int{2, 3}, src.calls())
}

// TestFetchOlder_UpstreamError_CursorStays — при сбое загрузки курсор
// не двигается: следующий вызов повторяет ту же страницу.
func TestFetchOlder_UpstreamError_CursorStays(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pageErr[2] = errors.New("fetch list page: timeout")

	svc := newIngestService(t, st, src)

	_, err := svc.FetchOlder(context.Background())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)

	delete(src.pageErr, 2)
	src.pages[2] = &ListResult{Letters: []models.Letter{letter("A", "https://example.org/2023/01/a")}}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	outcome, err := svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)

	require.Equal(t, []int{2, 2}, src.calls())
}

// TestFetchOlder_EmptyPage_Exhausts — пустая страница фиксирует конец списка;
// последующие вызовы отвечают has_more=false без обращений к источнику.
func TestFetchOlder_EmptyPage_Exhausts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource() // страница 2 не задана -> пустой результат

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasMore)
	require.Equal(t, 0, outcome.Attempted)
	require.Equal(t, []int{2}, src.calls())

	// Исчерпано: ни одного сетевого запроса.
	outcome, err = svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasMore)
	require.Equal(t, []int{2}, src.calls())
}

// TestFetchOlder_PageNotFound_Exhausts — 404 на страницу за пределами архива
// равнозначен пустой странице: фиксируется исчерпание, ошибка не возвращается,
// повторные вызовы не ходят в сеть.
func TestFetchOlder_PageNotFound_Exhausts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pageErr[2] = fmt.Errorf("scraper.ListPage: page 2 does not exist: %w", ErrPageNotFound)

	svc := newIngestService(t, st, src)

	outcome, err := svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasMore)
	require.Equal(t, 0, outcome.Attempted)
	require.Equal(t, []int{2}, src.calls())

	// Конец архива зафиксирован: повторный вызов не обращается к источнику.
	outcome, err = svc.FetchOlder(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasMore)
	require.Equal(t, []int{2}, src.calls())
}

// TestFetchNew_AfterExhaustion — исчерпание архива не мешает «свежим»,
// но has_more в их итоге отражает состояние архива.
func TestFetchNew_AfterExhaustion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{letter("A", "https://example.org/2024/01/a")}}

	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	svc := newIngestService(t, st, src)

	_, err := svc.FetchOlder(context.Background()) // пустая страница 2 -> исчерпание
	require.NoError(t, err)

	outcome, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Inserted)
	require.False(t, outcome.HasMore)
}

// TestFetchNew_PublishedAtUTC — дата публикации нормализуется к UTC
// перед сохранением.
func TestFetchNew_PublishedAtUTC(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	loc := time.FixedZone("UTC+5", 5*3600)
	l := letter("A", "https://example.org/2024/01/a")
	l.PublishedAt = time.Date(2024, 1, 15, 12, 0, 0, 0, loc)

	src := newStubSource()
	src.pages[1] = &ListResult{Letters: []models.Letter{l}}

	var saved models.Letter
	st.EXPECT().LetterExists(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SaveLetter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *models.Letter) (uuid.UUID, error) {
			saved = *l
			return uuid.New(), nil
		})

	svc := newIngestService(t, st, src)

	_, err := svc.FetchNew(context.Background())
	require.NoError(t, err)
	require.Equal(t, time.UTC, saved.PublishedAt.Location())
}
