// storage определяет контракты доступа к БД для letter-insights.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-letter-insights/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности по каноническому URL.
	// Ожидаемый исход при дедупликации, не сбой.
	ErrAlreadyExists = errors.New("already exists")
)

// LetterStorage описывает операции над сущностью models.Letter.
type LetterStorage interface {
	// SaveLetter вставляет публикацию и возвращает присвоенный идентификатор.
	// Уникальность по URL обеспечивает БД: при конфликте — ErrAlreadyExists,
	// существующая запись не изменяется (first-write-wins).
	SaveLetter(ctx context.Context, letter *models.Letter) (uuid.UUID, error)
	// LetterExists проверяет наличие публикации по каноническому URL.
	LetterExists(ctx context.Context, url string) (bool, error)
	// LetterByID возвращает публикацию по идентификатору.
	// Если запись не найдена — ErrNotFound.
	LetterByID(ctx context.Context, id uuid.UUID) (*models.Letter, error)
	// ListLetters возвращает страницу публикаций (limit/offset) и общий счётчик,
	// отсортированных по published_at DESC, created_at DESC.
	ListLetters(ctx context.Context, opts models.ListOptions) (*models.LetterPage, error)
}

// QuestionStorage описывает операции над сущностью models.Question.
type QuestionStorage interface {
	// SaveQuestion сохраняет пару вопрос-ответ и возвращает идентификатор.
	SaveQuestion(ctx context.Context, question *models.Question) (uuid.UUID, error)
	// QuestionsByLetter возвращает вопросы публикации в порядке создания.
	QuestionsByLetter(ctx context.Context, letterID uuid.UUID) ([]models.Question, error)
	// DeleteQuestion удаляет пару вопрос-ответ. Если записи нет — ErrNotFound.
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

// Storage задаёт контракт доступа к хранилищу для letter-insights.
type Storage interface {
	LetterStorage
	QuestionStorage
	Close()
}
