package service

import (
	"strings"

	"github.com/pribylovaa/go-letter-insights/internal/models"
)

// finalizeLetter доводит запись до инвариантов домена:
//   - Title/URL обязательны (после TrimSpace) — иначе запись отбрасывается;
//   - Content := Content || Summary || Title (страница детали могла не
//     загрузиться, запись всё равно сохраняется);
//   - PublishedAt нулевой допустим (неизвестная дата, не ключ дедупликации).
//
// Возвращает (запись, ok=false если запись следует отбросить).
func finalizeLetter(letter models.Letter) (models.Letter, bool) {
	letter.Title = strings.TrimSpace(letter.Title)
	letter.URL = strings.TrimSpace(letter.URL)

	if letter.Title == "" || letter.URL == "" {
		return models.Letter{}, false
	}

	letter.Summary = strings.TrimSpace(letter.Summary)

	if strings.TrimSpace(letter.Content) == "" {
		if letter.Summary != "" {
			letter.Content = letter.Summary
		} else {
			letter.Content = letter.Title
		}
	}

	if !letter.PublishedAt.IsZero() {
		letter.PublishedAt = letter.PublishedAt.UTC()
	}

	return letter, true
}
