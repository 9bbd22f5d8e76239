package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-letter-insights/internal/config"
	"github.com/pribylovaa/go-letter-insights/internal/pkg/log"
	"github.com/pribylovaa/go-letter-insights/internal/service"
)

// Scraper реализует service.Source поверх Client и Extractor.
type Scraper struct {
	client    *Client
	extractor *Extractor
	baseURL   string
}

// New создаёт скрейпер. httpClient == nil — клиент по умолчанию.
func New(httpClient *http.Client, cfg config.ScraperConfig) (*Scraper, error) {
	const op = "scraper.New"

	extractor, err := NewExtractor(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Scraper{
		client:    NewClient(httpClient, cfg.Timeout, cfg.MaxRetries, cfg.BackoffBase),
		extractor: extractor,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// pageURL строит адрес страницы списка: первая — сам раздел,
// дальше — /page/N у источника.
func (s *Scraper) pageURL(page int) string {
	if page <= 1 {
		return s.baseURL
	}
	return fmt.Sprintf("%s/page/%d", s.baseURL, page)
}

// ListPage загружает и разбирает страницу списка публикаций.
//
// Ошибка возвращается только при терминальном сбое загрузки самой
// страницы (*FetchError); ошибки извлечения отдельных записей идут
// в ListResult.Errors и не прерывают разбор.
func (s *Scraper) ListPage(ctx context.Context, page int) (*service.ListResult, error) {
	const op = "scraper.ListPage"

	lg := log.From(ctx)

	u := s.pageURL(page)
	html, err := s.client.Get(ctx, u)
	if err != nil {
		// 404 на страницу списка означает, что архив закончился,
		// а не что источник недоступен.
		var ferr *FetchError
		if errors.As(err, &ferr) && ferr.Kind == FetchHTTPStatus && ferr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %s: %w", op, err, service.ErrPageNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	letters, errs := s.extractor.ParseListPage(html)

	lg.Info("list_page_parsed",
		slog.String("op", op),
		slog.Int("page", page),
		slog.Int("letters", len(letters)),
		slog.Int("extract_errors", len(errs)),
	)
	for _, e := range errs {
		// Достаточно контекста для диагностики дрейфа разметки источника.
		lg.Warn("extract_error",
			slog.String("op", op),
			slog.Int("page", page),
			slog.String("url", e.URL),
			slog.String("msg", e.Message),
		)
	}

	return &service.ListResult{Letters: letters, Errors: errs}, nil
}

// LetterContent загружает страницу детали и извлекает полный текст публикации.
func (s *Scraper) LetterContent(ctx context.Context, url string) (string, error) {
	const op = "scraper.LetterContent"

	html, err := s.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.extractor.ParseDetailPage(html), nil
}

// Проверка выполнения контракта верхнего уровня.
var _ service.Source = (*Scraper)(nil)
