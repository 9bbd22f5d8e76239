package models

import (
	"time"

	"github.com/google/uuid"
)

// Question — вопрос пользователя к публикации и сгенерированный ответ.
type Question struct {
	// ID — уникальный идентификатор пары вопрос-ответ.
	ID uuid.UUID
	// LetterID — идентификатор публикации, к которой задан вопрос.
	LetterID uuid.UUID
	// Question — текст вопроса.
	Question string
	// Answer — сгенерированный ответ.
	Answer string
	// CreatedAt — время сохранения (UTC).
	CreatedAt time.Time
}
