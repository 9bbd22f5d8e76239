package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

// SaveLetter вставляет публикацию с дедупликацией по каноническому URL.
//
// Политика first-write-wins: при конфликте по url существующая запись
// не изменяется, возвращается storage.ErrAlreadyExists. Арбитр гонок —
// уникальный констрейнт БД, а не проверка перед вставкой.
func (s *Storage) SaveLetter(ctx context.Context, letter *models.Letter) (uuid.UUID, error) {
	const op = "storage.postgres.SaveLetter"

	query := `
		INSERT INTO letters (title, url, published_at, summary, content)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (url) DO NOTHING
		RETURNING id, created_at
	`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query,
		letter.Title,
		letter.URL,
		letter.PublishedAt.UTC(),
		letter.Summary,
		letter.Content,
	).Scan(&id, &letter.CreatedAt)

	if err != nil {
		// DO NOTHING при конфликте не возвращает строку.
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	letter.ID = id
	letter.CreatedAt = letter.CreatedAt.UTC()

	return id, nil
}

// LetterExists проверяет наличие публикации по каноническому URL.
func (s *Storage) LetterExists(ctx context.Context, url string) (bool, error) {
	const op = "storage.postgres.LetterExists"

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM letters WHERE url = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// LetterByID возвращает публикацию по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) LetterByID(ctx context.Context, id uuid.UUID) (*models.Letter, error) {
	const op = "storage.postgres.LetterByID"

	var letter models.Letter
	err := s.db.QueryRow(ctx, `
		SELECT id, title, url, published_at, summary, content, created_at
		FROM letters
		WHERE id = $1
	`, id).Scan(
		&letter.ID,
		&letter.Title,
		&letter.URL,
		&letter.PublishedAt,
		&letter.Summary,
		&letter.Content,
		&letter.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Нормализация в UTC.
	letter.PublishedAt = letter.PublishedAt.UTC()
	letter.CreatedAt = letter.CreatedAt.UTC()

	return &letter, nil
}

// ListLetters возвращает страницу публикаций (limit/offset) и общий счётчик.
// Сортировка фиксирована: published_at DESC, created_at DESC.
func (s *Storage) ListLetters(ctx context.Context, opts models.ListOptions) (*models.LetterPage, error) {
	const op = "storage.postgres.ListLetters"

	limit := opts.Limit
	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	var page models.LetterPage

	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM letters`).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, title, url, published_at, summary, content, created_at
		FROM letters
		ORDER BY published_at DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var letter models.Letter
		if scanErr := rows.Scan(
			&letter.ID,
			&letter.Title,
			&letter.URL,
			&letter.PublishedAt,
			&letter.Summary,
			&letter.Content,
			&letter.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		letter.PublishedAt = letter.PublishedAt.UTC()
		letter.CreatedAt = letter.CreatedAt.UTC()

		page.Items = append(page.Items, letter)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return &page, nil
}
