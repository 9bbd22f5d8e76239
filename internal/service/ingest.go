package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-letter-insights/internal/models"
	"github.com/pribylovaa/go-letter-insights/internal/pkg/log"
	"github.com/pribylovaa/go-letter-insights/internal/storage"
)

// FetchNew — один проход направления «свежие»: пересканирует первую страницу
// источника и сохраняет ещё не виденные записи.
//
// Ошибки:
//   - ErrUpstreamUnavailable — страница не загрузилась после исчерпания ретраев;
//   - частичный результат при истёкшем дедлайне возвращается вместе с ошибкой
//     контекста: накопленный прогресс не отбрасывается.
func (s *Service) FetchNew(ctx context.Context) (*models.FetchOutcome, error) {
	const op = "service.ingest.FetchNew"

	lg := log.From(ctx)

	page := s.cursor.NextPage(DirectionNewer)
	lg.Info("fetch_new_start", slog.String("op", op), slog.Int("page", page))

	res, err := s.source.ListPage(ctx, page)
	if err != nil {
		lg.Error("fetch_new_upstream_error",
			slog.String("op", op),
			slog.Int("page", page),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %s: %w", op, err, ErrUpstreamUnavailable)
	}

	// Передача ингестору состоялась; у «свежих» курсор не двигается —
	// направление всегда начинается с первой страницы.
	s.cursor.Advance(DirectionNewer, page)

	outcome, ingestErr := s.ingestBatch(ctx, res)
	outcome.HasMore = !s.cursor.Exhausted(DirectionOlder)

	lg.Info("fetch_new_done",
		slog.String("op", op),
		slog.Int("attempted", outcome.Attempted),
		slog.Int("inserted", outcome.Inserted),
		slog.Int("skipped", outcome.SkippedDuplicates),
		slog.Int("errors", len(outcome.Errors)),
	)

	if ingestErr != nil {
		return outcome, fmt.Errorf("%s: %w", op, ingestErr)
	}
	return outcome, nil
}

// FetchOlder — один проход направления «старые»: запрашивает следующую
// непросмотренную страницу и сохраняет ещё не виденные записи.
//
// Поведение курсора:
//   - при сбое загрузки курсор не двигается — следующий вызов повторит
//     ту же страницу;
//   - пустая страница либо 404 за пределами архива фиксируют исчерпание:
//     последующие вызовы возвращают has_more=false без сетевых запросов.
func (s *Service) FetchOlder(ctx context.Context) (*models.FetchOutcome, error) {
	const op = "service.ingest.FetchOlder"

	lg := log.From(ctx)

	if s.cursor.Exhausted(DirectionOlder) {
		lg.Info("fetch_older_exhausted", slog.String("op", op))
		return &models.FetchOutcome{HasMore: false}, nil
	}

	page := s.cursor.NextPage(DirectionOlder)
	lg.Info("fetch_older_start", slog.String("op", op), slog.Int("page", page))

	res, err := s.source.ListPage(ctx, page)
	if errors.Is(err, ErrPageNotFound) {
		// Несуществующая страница за пределами архива равнозначна
		// пустой: список закончился.
		s.cursor.MarkExhausted(DirectionOlder)
		lg.Info("fetch_older_end_of_list", slog.String("op", op), slog.Int("page", page))
		return &models.FetchOutcome{HasMore: false}, nil
	}
	if err != nil {
		lg.Error("fetch_older_upstream_error",
			slog.String("op", op),
			slog.Int("page", page),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %s: %w", op, err, ErrUpstreamUnavailable)
	}

	if len(res.Letters) == 0 && len(res.Errors) == 0 {
		// Источник сообщил конец списка.
		s.cursor.MarkExhausted(DirectionOlder)
		lg.Info("fetch_older_end_of_list", slog.String("op", op), slog.Int("page", page))
		return &models.FetchOutcome{HasMore: false}, nil
	}

	// Страница успешно загружена и передаётся ингестору — курсор двигается
	// до завершения персистентности: при падении процесса перерасход
	// ограничен одной незаписанной страницей.
	s.cursor.Advance(DirectionOlder, page)

	outcome, ingestErr := s.ingestBatch(ctx, res)
	outcome.HasMore = !s.cursor.Exhausted(DirectionOlder)

	lg.Info("fetch_older_done",
		slog.String("op", op),
		slog.Int("page", page),
		slog.Int("attempted", outcome.Attempted),
		slog.Int("inserted", outcome.Inserted),
		slog.Int("skipped", outcome.SkippedDuplicates),
		slog.Int("errors", len(outcome.Errors)),
	)

	if ingestErr != nil {
		return outcome, fmt.Errorf("%s: %w", op, ingestErr)
	}
	return outcome, nil
}

// ingestBatch — дедуплицирующий ингест записей одной страницы, в порядке
// извлечения.
//
// Правила:
//   - существование проверяется по каноническому URL; арбитр гонок —
//     уникальный констрейнт БД (дубликат вставки == «уже существует»);
//   - first-write-wins: существующая запись не перезаписывается;
//   - любой сбой одной записи фиксируется в outcome.Errors и не прерывает
//     обработку остальных;
//   - Inserted — ровно столько, сколько вставок подтвердило хранилище.
//
// Возвращаемая ошибка не нулевая только при истёкшем контексте; outcome
// при этом содержит накопленный прогресс.
func (s *Service) ingestBatch(ctx context.Context, res *ListResult) (*models.FetchOutcome, error) {
	const op = "service.ingest.ingestBatch"

	lg := log.From(ctx)

	outcome := &models.FetchOutcome{
		Attempted: len(res.Letters),
		Errors:    append([]models.IngestError(nil), res.Errors...),
	}

	for _, raw := range res.Letters {
		if ctx.Err() != nil {
			lg.Warn("ingest_deadline_truncated",
				slog.String("op", op),
				slog.Int("inserted_so_far", outcome.Inserted),
			)
			return outcome, ctx.Err()
		}

		letter, ok := finalizeLetter(raw)
		if !ok {
			outcome.Errors = append(outcome.Errors, models.IngestError{
				URL:     raw.URL,
				Stage:   models.StageExtract,
				Message: "record dropped: missing required fields",
			})
			continue
		}

		exists, err := s.storage.LetterExists(ctx, letter.URL)
		if err != nil {
			outcome.Errors = append(outcome.Errors, models.IngestError{
				URL:     letter.URL,
				Stage:   models.StageStore,
				Message: fmt.Sprintf("existence check: %v", err),
			})
			continue
		}
		if exists {
			outcome.SkippedDuplicates++
			continue
		}

		// Полный текст подтягивается только для непросмотренных записей;
		// сбой не фатален — запись сохраняется с анонсом вместо текста.
		content, cerr := s.source.LetterContent(ctx, letter.URL)
		if cerr != nil {
			outcome.Errors = append(outcome.Errors, models.IngestError{
				URL:     letter.URL,
				Stage:   models.StageFetchContent,
				Message: cerr.Error(),
			})
		} else if content != "" {
			letter.Content = content
		}

		_, serr := s.storage.SaveLetter(ctx, &letter)
		switch {
		case errors.Is(serr, storage.ErrAlreadyExists):
			// Гонка параллельных вызовов: вставку выиграл другой — итог идемпотентен.
			outcome.SkippedDuplicates++
		case serr != nil:
			outcome.Errors = append(outcome.Errors, models.IngestError{
				URL:     letter.URL,
				Stage:   models.StageStore,
				Message: serr.Error(),
			})
		default:
			outcome.Inserted++
		}
	}

	return outcome, nil
}
