package service

import "context"

// Generator описывает генерацию ответа на вопрос по тексту публикации.
// Реализация — internal/llm (AWS Bedrock); вызов трактуется как непрозрачная
// функция с контрактом сбоя *llm.GenerationError.
type Generator interface {
	Answer(ctx context.Context, content, question string) (string, error)
}
