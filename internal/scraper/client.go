// scraper реализует загрузку и разбор страниц источника публикаций.
//
// Пакет разбит на независимые части:
//   - Client — HTTP-загрузка с таймаутом, ограниченными ретраями и backoff;
//   - Extractor — разбор полуструктурированной разметки в доменные записи;
//   - Scraper — композиция, реализующая service.Source.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FetchErrorKind — классификация терминального сбоя загрузки.
type FetchErrorKind string

const (
	// FetchTimeout — запрос не уложился в таймаут.
	FetchTimeout FetchErrorKind = "timeout"
	// FetchHTTPStatus — источник ответил неуспешным HTTP-статусом.
	FetchHTTPStatus FetchErrorKind = "http_status"
	// FetchNetwork — сетевой сбой или некорректный URL.
	FetchNetwork FetchErrorKind = "network"
)

// FetchError — терминальная ошибка загрузки одной страницы/документа.
// Возвращается после исчерпания ретраев либо при неповторяемом сбое.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	// Status — HTTP-статус последнего ответа (для Kind == FetchHTTPStatus).
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client — HTTP-загрузчик страниц источника.
//
// Состояния не хранит: повторный вызов с теми же аргументами независим.
type Client struct {
	http        *http.Client
	timeout     time.Duration
	maxRetries  int
	backoffBase time.Duration
}

// NewClient создаёт загрузчик. httpClient == nil — клиент по умолчанию.
func NewClient(httpClient *http.Client, timeout time.Duration, maxRetries int, backoffBase time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if backoffBase <= 0 {
		backoffBase = 500 * time.Millisecond
	}

	return &Client{
		http:        httpClient,
		timeout:     timeout,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Get загружает документ по URL.
//
// Повторяемые сбои (таймаут, обрыв соединения, 5xx, 429) ретраятся
// до maxRetries попыток с экспоненциальным backoff. Неповторяемые
// (прочие 4xx, некорректный URL) возвращаются сразу.
// Терминальный результат — *FetchError.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: rawURL, Err: err}
	}

	var lastErr *FetchError

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, backoffSchedule(attempt-1, c.backoffBase)); err != nil {
				return "", &FetchError{Kind: FetchTimeout, URL: rawURL, Err: err}
			}
		}

		body, ferr := c.once(ctx, rawURL)
		if ferr == nil {
			return body, nil
		}

		lastErr = ferr
		if !isRetryable(ferr) {
			return "", ferr
		}
		// Общий дедлайн вызова истёк — дальнейшие попытки бессмысленны.
		if ctx.Err() != nil {
			return "", lastErr
		}
	}

	return "", lastErr
}

// once — одна попытка загрузки с собственным таймаутом.
func (c *Client) once(ctx context.Context, rawURL string) (string, *FetchError) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: rawURL, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		kind := FetchNetwork
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = FetchTimeout
		}
		return "", &FetchError{Kind: kind, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Тело не нужно, но вычитываем для переиспользования соединения.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &FetchError{Kind: FetchHTTPStatus, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: rawURL, Err: err}
	}

	return string(body), nil
}

// isRetryable — предикат «сбой стоит повторить».
// Повторяемые: таймауты, сетевые обрывы, 5xx и 429.
func isRetryable(e *FetchError) bool {
	switch e.Kind {
	case FetchTimeout:
		return true
	case FetchNetwork:
		// Некорректный URL не ретраим — он отсеивается до первой попытки.
		return true
	case FetchHTTPStatus:
		return isRetryableStatus(e.Status)
	}
	return false
}

// isRetryableStatus — повторяемые HTTP-статусы.
func isRetryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// backoffSchedule возвращает паузу перед (attempt+1)-й попыткой:
// base * 2^(attempt-1), с потолком 8s.
func backoffSchedule(attempt int, base time.Duration) time.Duration {
	const maxBackoff = 8 * time.Second

	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// sleepCtx — пауза, уважающая отмену контекста.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// isTimeout — сетевой таймаут (net.Error с Timeout() == true).
func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
