package service

import "sync"

// Direction — направление обхода страниц источника.
type Direction int

const (
	// DirectionNewer — «свежие»: всегда пересканируется первая страница.
	DirectionNewer Direction = iota
	// DirectionOlder — «старые»: монотонно продвигающийся курсор со второй страницы.
	DirectionOlder
)

// cursor — покурсорное состояние пагинации, по одному на направление.
//
// Живёт только в памяти процесса: рестарт возвращает оба направления
// к началу диапазона (принятое ограничение — граница снаружи наблюдаема
// только у «старого» направления).
//
// Инварианты:
//   - курсор направления продвигается только вперёд и только после успешной
//     загрузки страницы; при сбое загрузки остаётся на месте, следующий вызов
//     повторит ту же страницу;
//   - направления независимы и не влияют друг на друга.
type cursor struct {
	mu sync.Mutex
	// olderNext — следующая страница «старого» направления.
	// Страница 1 принадлежит направлению «свежих».
	olderNext int
	// olderExhausted — источник сообщил конец списка для «старых».
	olderExhausted bool
}

func newCursor() *cursor {
	return &cursor{olderNext: 2}
}

// NextPage возвращает номер страницы для следующего запроса направления.
func (c *cursor) NextPage(d Direction) int {
	if d == DirectionNewer {
		return 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.olderNext
}

// Advance продвигает курсор направления за успешно обработанную страницу.
// Для «свежих» — no-op: направление каждый раз сканирует с первой страницы.
func (c *cursor) Advance(d Direction, page int) {
	if d == DirectionNewer {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if page >= c.olderNext {
		c.olderNext = page + 1
	}
}

// MarkExhausted фиксирует конец списка. Имеет смысл только для «старых»:
// у «свежих» состояния исчерпания нет.
func (c *cursor) MarkExhausted(d Direction) {
	if d == DirectionNewer {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.olderExhausted = true
}

// Exhausted сообщает, исчерпано ли направление.
func (c *cursor) Exhausted(d Direction) bool {
	if d == DirectionNewer {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.olderExhausted
}
