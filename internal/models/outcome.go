package models

// Стадии конвейера, на которых фиксируются нефатальные ошибки по отдельным записям.
const (
	StageExtract      = "extract"
	StageFetchContent = "fetch_content"
	StageStore        = "store"
)

// IngestError — нефатальная ошибка обработки одной записи.
// Накапливаются в FetchOutcome.Errors в порядке обработки; никогда
// не прерывают обработку остальных записей страницы.
type IngestError struct {
	// URL — каноническая ссылка записи, если известна на момент сбоя.
	URL string
	// Stage — стадия конвейера (StageExtract/StageFetchContent/StageStore).
	Stage string
	// Message — диагностическое описание сбоя.
	Message string
}

// FetchOutcome — структурированный результат одного вызова ингеста.
//
// Инварианты:
//   - Inserted + SkippedDuplicates <= Attempted;
//   - Inserted — ровно столько записей, сколько хранилище подтвердило
//     как созданные в этом вызове (не оценка).
type FetchOutcome struct {
	// Attempted — сколько нормализованных записей дошло до ингестора.
	Attempted int
	// Inserted — сколько записей физически сохранено в этом вызове.
	Inserted int
	// SkippedDuplicates — сколько записей уже существовало (по URL).
	SkippedDuplicates int
	// HasMore — остались ли у источника непросмотренные старые страницы.
	HasMore bool
	// Errors — упорядоченный список нефатальных ошибок по записям.
	Errors []IngestError
}
