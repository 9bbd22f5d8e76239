// models содержит доменные сущности letter-insights.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Letter — доменная сущность публикации (economic letter).
//
// Особенности:
//   - ID — UUIDv4, присваивается хранилищем при вставке;
//   - URL — каноническая абсолютная ссылка, единственный ключ дедупликации;
//   - Временные метки — в UTC.
type Letter struct {
	// ID — уникальный идентификатор публикации.
	ID uuid.UUID
	// Title — заголовок публикации.
	Title string
	// URL — каноническая ссылка на источник (уникальна).
	URL string
	// PublishedAt — дата публикации у источника.
	// Нулевое значение допустимо: дата не распарсилась, запись не отбрасывается.
	PublishedAt time.Time
	// Summary — краткий анонс публикации (может быть пустым).
	Summary string
	// Content — полный текст публикации (может быть пустым при частичном сбое извлечения).
	Content string
	// CreatedAt — время сохранения записи в БД (UTC).
	CreatedAt time.Time
}

// ListOptions — параметры постраничной выборки публикаций.
//
// Особенности:
//   - при Limit == 0 применяется серверный default (из config.LimitsConfig.Default);
//   - Offset < 0 трактуется как 0.
type ListOptions struct {
	Limit  int32
	Offset int32
}

// LetterPage — страница результатов выборки.
type LetterPage struct {
	Items []Letter
	// Total — общее количество публикаций в хранилище.
	Total int64
}
