package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/pkg/log"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

// AskQuestion генерирует ответ на вопрос по тексту публикации и сохраняет пару.
//
// Ошибки:
//   - ErrInvalidArgument — пустой вопрос;
//   - ErrNotFound — публикация отсутствует;
//   - ErrGenerationFailed — сбой генерации (ответ не сохраняется).
func (s *Service) AskQuestion(ctx context.Context, letterID, question string) (*models.Question, error) {
	const op = "service.questions.AskQuestion"

	lg := log.From(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%s: empty question: %w", op, ErrInvalidArgument)
	}

	letter, err := s.LetterByID(ctx, letterID)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Answer(ctx, letter.Content, question)
	if err != nil {
		lg.Error("generate_answer_error",
			slog.String("op", op),
			slog.String("letter_id", letterID),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %s: %w", op, err, ErrGenerationFailed)
	}

	q := models.Question{
		LetterID:  letter.ID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.storage.SaveQuestion(ctx, &q)
	if err != nil {
		lg.Error("save_question_storage_error",
			slog.String("op", op),
			slog.String("letter_id", letterID),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	q.ID = id

	lg.Info("ask_question_ok",
		slog.String("op", op),
		slog.String("letter_id", letterID),
		slog.String("question_id", id.String()),
	)

	return &q, nil
}

// DeleteQuestion удаляет пару вопрос-ответ.
//
// Ошибки:
//   - ErrNotFound — пара отсутствует либо id имеет некорректный формат.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	const op = "service.questions.DeleteQuestion"

	questionID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := s.storage.DeleteQuestion(ctx, questionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.From(ctx).Error("delete_question_storage_error",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
