package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-letter-insights/internal/models"
)

// ErrPageNotFound — запрошенной страницы списка у источника не существует.
// Реализация Source обязана возвращать её (обёрнутой) при ответе 404 на
// страницу списка: для архива это штатный маркер конца, а не сбой.
var ErrPageNotFound = errors.New("list page not found")

// Source описывает абстракцию источника публикаций (скрейпер списка
// и страниц деталей).
//
// Требования к реализации:
//  1. ListPage возвращает ошибку только при терминальном сбое загрузки
//     самой страницы (исчерпаны ретраи, неповторяемый HTTP-статус);
//     проблемы извлечения отдельных записей идут в ListResult.Errors.
//  2. Конец списка источник сообщает одним из двух способов: пустым
//     ListResult (без записей и без ошибок) либо ErrPageNotFound
//     в ответ на несуществующую страницу.
//  3. URL в возвращаемых записях — абсолютные канонические ссылки
//     (ключ дедупликации).
//  4. Реализация обязана уважать ctx (отмена/таймауты).
type Source interface {
	// ListPage загружает и разбирает страницу списка с номером page (1-based).
	ListPage(ctx context.Context, page int) (*ListResult, error)
	// LetterContent загружает и извлекает полный текст одной публикации.
	LetterContent(ctx context.Context, url string) (string, error)
}

// ListResult — результат разбора одной страницы списка.
// Letters идут в порядке появления в разметке; Errors — упорядоченные
// нефатальные ошибки извлечения отдельных записей.
type ListResult struct {
	Letters []models.Letter
	Errors  []models.IngestError
}
