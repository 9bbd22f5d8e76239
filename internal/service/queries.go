package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/pkg/log"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

// ListLetters возвращает страницу публикаций с нормализацией лимита по конфигу.
//
// Правила нормализации:
//   - limit <= 0 -> cfg.LimitsConfig.Default;
//   - limit > max -> cfg.LimitsConfig.Max;
//   - offset < 0 -> 0.
func (s *Service) ListLetters(ctx context.Context, opts models.ListOptions) (*models.LetterPage, error) {
	const op = "service.queries.ListLetters"

	lg := log.From(ctx)
	lg.Info("list_letters_request",
		slog.String("op", op),
		slog.Int("limit", int(opts.Limit)),
		slog.Int("offset", int(opts.Offset)),
	)

	if opts.Limit <= 0 {
		opts.Limit = s.cfg.LimitsConfig.Default
	}
	if s.cfg.LimitsConfig.Max > 0 && opts.Limit > s.cfg.LimitsConfig.Max {
		opts.Limit = s.cfg.LimitsConfig.Max
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	page, err := s.storage.ListLetters(ctx, opts)
	if err != nil {
		lg.Error("list_letters_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("list_letters_ok",
		slog.String("op", op),
		slog.Int("items", len(page.Items)),
		slog.Int64("total", page.Total),
	)

	return page, nil
}

// LetterByID возвращает публикацию по идентификатору.
//
// Ошибки:
//   - ErrNotFound — запись отсутствует либо id имеет некорректный формат;
//   - прочие ошибки стораджа — обёрнутые и прокинутые наверх.
func (s *Service) LetterByID(ctx context.Context, id string) (*models.Letter, error) {
	const op = "service.queries.LetterByID"

	lg := log.From(ctx)

	letterID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		// Некорректный формат трактуется как «нет такой записи».
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	letter, err := s.storage.LetterByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("letter_by_id_not_found",
				slog.String("op", op),
				slog.String("id", id),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("letter_by_id_storage_error",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return letter, nil
}

// QuestionsByLetter возвращает вопросы-ответы публикации в порядке создания.
func (s *Service) QuestionsByLetter(ctx context.Context, letterID string) ([]models.Question, error) {
	const op = "service.queries.QuestionsByLetter"

	id, err := uuid.Parse(strings.TrimSpace(letterID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	questions, err := s.storage.QuestionsByLetter(ctx, id)
	if err != nil {
		log.From(ctx).Error("questions_by_letter_storage_error",
			slog.String("op", op),
			slog.String("letter_id", letterID),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return questions, nil
}
