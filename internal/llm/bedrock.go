// llm реализует генерацию ответов на вопросы по тексту публикации
// через AWS Bedrock (Anthropic messages API).
//
// Для остального сервиса это непрозрачный вызов с контрактом сбоя
// *GenerationError; конвейер ингеста от него не зависит.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/pribylovaa/go-letter-insights/internal/config"
	"github.com/pribylovaa/go-letter-insights/internal/pkg/log"
)

// GenerationErrorKind — классификация сбоя генерации.
type GenerationErrorKind string

const (
	GenTimeout         GenerationErrorKind = "timeout"
	GenAuth            GenerationErrorKind = "auth"
	GenRateLimit       GenerationErrorKind = "rate_limit"
	GenInvalidResponse GenerationErrorKind = "invalid_response"
)

// GenerationError — терминальная ошибка одного вызова генерации.
type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation: %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// invoker — узкий интерфейс Bedrock Runtime для подмены в тестах.
type invoker interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client — клиент генерации ответов.
type Client struct {
	bedrock invoker
	modelID string
	timeout time.Duration
}

// New создаёт клиент поверх стандартной AWS-цепочки конфигурации
// с переопределениями региона/профиля из конфига.
//
// Ошибки загрузки AWS-конфигурации всплывают здесь, на старте сервиса,
// а не при первом вызове генерации.
func New(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	const op = "llm.New"

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		bedrock: bedrockruntime.NewFromConfig(awsCfg),
		modelID: cfg.ModelID,
		timeout: cfg.Timeout,
	}, nil
}

// anthropicRequest — тело запроса Anthropic messages API поверх Bedrock.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Answer генерирует ответ на вопрос по тексту публикации.
// Терминальный результат при сбое — *GenerationError.
func (c *Client) Answer(ctx context.Context, content, question string) (string, error) {
	const op = "llm.Answer"

	lg := log.From(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        2000,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(content, question)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", &GenerationError{Kind: GenInvalidResponse, Err: err}
	}

	lg.Info("invoke_model", slog.String("op", op), slog.String("model_id", c.modelID))

	out, err := c.bedrock.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		gerr := classify(err)
		lg.Error("invoke_model_error",
			slog.String("op", op),
			slog.String("kind", string(gerr.Kind)),
			slog.String("err", err.Error()),
		)

		return "", gerr
	}

	answer, err := parseAnswer(out.Body)
	if err != nil {
		return "", &GenerationError{Kind: GenInvalidResponse, Err: err}
	}

	return answer, nil
}

// parseAnswer извлекает текст ответа из тела ответа модели.
func parseAnswer(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", errors.New("model response has no content")
	}

	return resp.Content[0].Text, nil
}

// classify сводит ошибку SDK к контрактным видам сбоя.
func classify(err error) *GenerationError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationError{Kind: GenTimeout, Err: err}
	}

	var (
		throttle *brtypes.ThrottlingException
		quota    *brtypes.ServiceQuotaExceededException
		denied   *brtypes.AccessDeniedException
		modelTO  *brtypes.ModelTimeoutException
	)
	switch {
	case errors.As(err, &throttle), errors.As(err, &quota):
		return &GenerationError{Kind: GenRateLimit, Err: err}
	case errors.As(err, &denied):
		return &GenerationError{Kind: GenAuth, Err: err}
	case errors.As(err, &modelTO):
		return &GenerationError{Kind: GenTimeout, Err: err}
	}

	// Ошибки кредов приходят как generic APIError без типизированного класса.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidSignatureException", "ExpiredTokenException":
			return &GenerationError{Kind: GenAuth, Err: err}
		}
	}

	return &GenerationError{Kind: GenInvalidResponse, Err: err}
}

// buildPrompt собирает промпт для модели.
func buildPrompt(content, question string) string {
	return fmt.Sprintf(`You are an expert economist analyzing Federal Reserve Bank of San Francisco economic letters.

Here is an economic letter:

<letter>
%s
</letter>

Please answer the following question about this letter:

<question>
%s
</question>

Provide a clear, concise, and informative answer based on the content of the letter. If the letter doesn't contain enough information to fully answer the question, acknowledge this and provide what insights you can based on the available content.`, content, question)
}
