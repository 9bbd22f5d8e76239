// service содержит бизнес-логику letter-insights: конвейер ингеста
// публикаций, выборки и работу с вопросами-ответами.
package service

import (
	"errors"

	"github.com/pribylovaa/go-letter-insights/internal/config"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable — текущая страница источника не загрузилась
	// после исчерпания ретраев. Уже сохранённые в этом вызове записи
	// остаются зафиксированными.
	// Транспорт: 502.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrGenerationFailed — сбой генерации ответа.
	// Транспорт: 502.
	ErrGenerationFailed = errors.New("answer generation failed")
)

// Service — бизнес-логика letter-insights.
type Service struct {
	storage   storage.Storage
	source    Source
	generator Generator
	cfg       config.Config
	cursor    *cursor
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, source Source, generator Generator, cfg config.Config) *Service {
	return &Service{
		storage:   storage,
		source:    source,
		generator: generator,
		cfg:       cfg,
		cursor:    newCursor(),
	}
}
