package http

import (
	"time"

	"github.com/pribylovaa/go-letter-insights/internal/models"
)

// DTO-слой REST API: плоские JSON-структуры поверх доменных моделей.
// Времена сериализуются в RFC3339 (UTC); неизвестная дата публикации — null.

type letterResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	PublishedAt *string `json:"published_at"`
	Summary     string  `json:"summary"`
	Content     string  `json:"content,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type letterListResponse struct {
	Letters []letterResponse `json:"letters"`
	Total   int64            `json:"total"`
	HasMore bool             `json:"has_more"`
}

type letterDetailResponse struct {
	Letter    letterResponse     `json:"letter"`
	Questions []questionResponse `json:"questions"`
}

type questionResponse struct {
	ID        string `json:"id"`
	LetterID  string `json:"letter_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}

type askQuestionRequest struct {
	Question string `json:"question"`
}

type ingestErrorResponse struct {
	URL     string `json:"url"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type outcomeResponse struct {
	Attempted         int                   `json:"attempted"`
	Inserted          int                   `json:"inserted"`
	SkippedDuplicates int                   `json:"skipped_duplicates"`
	HasMore           bool                  `json:"has_more"`
	Errors            []ingestErrorResponse `json:"errors"`
}

// withContent управляет включением полного текста: в списке он лишний.
func letterFromModel(l *models.Letter, withContent bool) letterResponse {
	resp := letterResponse{
		ID:        l.ID.String(),
		Title:     l.Title,
		URL:       l.URL,
		Summary:   l.Summary,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}

	if !l.PublishedAt.IsZero() {
		v := l.PublishedAt.UTC().Format(time.RFC3339)
		resp.PublishedAt = &v
	}

	if withContent {
		resp.Content = l.Content
	}

	return resp
}

func questionFromModel(q *models.Question) questionResponse {
	return questionResponse{
		ID:        q.ID.String(),
		LetterID:  q.LetterID.String(),
		Question:  q.Question,
		Answer:    q.Answer,
		CreatedAt: q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func outcomeFromModel(o *models.FetchOutcome) outcomeResponse {
	resp := outcomeResponse{
		Attempted:         o.Attempted,
		Inserted:          o.Inserted,
		SkippedDuplicates: o.SkippedDuplicates,
		HasMore:           o.HasMore,
		// Пустой массив вместо null: фронту не нужна ветка на nil.
		Errors: make([]ingestErrorResponse, 0, len(o.Errors)),
	}

	for _, e := range o.Errors {
		resp.Errors = append(resp.Errors, ingestErrorResponse{
			URL:     e.URL,
			Stage:   e.Stage,
			Message: e.Message,
		})
	}

	return resp
}
