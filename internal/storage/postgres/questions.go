package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

// SaveQuestion сохраняет пару вопрос-ответ.
// Нарушение внешнего ключа (публикация удалена) — storage.ErrNotFound.
func (s *Storage) SaveQuestion(ctx context.Context, question *models.Question) (uuid.UUID, error) {
	const op = "storage.postgres.SaveQuestion"

	query := `
		INSERT INTO questions (letter_id, question, answer)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query,
		question.LetterID,
		question.Question,
		question.Answer,
	).Scan(&id, &question.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	question.ID = id
	question.CreatedAt = question.CreatedAt.UTC()

	return id, nil
}

// QuestionsByLetter возвращает вопросы публикации в порядке создания.
func (s *Storage) QuestionsByLetter(ctx context.Context, letterID uuid.UUID) ([]models.Question, error) {
	const op = "storage.postgres.QuestionsByLetter"

	rows, err := s.db.Query(ctx, `
		SELECT id, letter_id, question, answer, created_at
		FROM questions
		WHERE letter_id = $1
		ORDER BY created_at ASC
	`, letterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if scanErr := rows.Scan(
			&q.ID,
			&q.LetterID,
			&q.Question,
			&q.Answer,
			&q.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		q.CreatedAt = q.CreatedAt.UTC()
		questions = append(questions, q)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return questions, nil
}

// DeleteQuestion удаляет пару вопрос-ответ.
// Если записи нет — storage.ErrNotFound.
func (s *Storage) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteQuestion"

	tag, err := s.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
