package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/config"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/generation"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// promptTemplate instructs the model to return strict JSON matching
// responseSchema. The note text is appended after the instructions.
const promptTemplate = `You are drafting interview-prep flashcards from a study note.
Produce between 1 and 10 cards. Respond with JSON only, matching:
{"cards":[{"question":"...","answer":"...","difficulty":"easy|medium|hard","tags":["..."],"frequency":1}]}
"frequency" is how often the topic comes up in frontend interviews, 1 (rare) to 5 (almost always).

Study note:
%s`

// responseSchema is the JSON structure the model is asked to return.
type responseSchema struct {
	Cards []cardSchema `json:"cards"`
}

type cardSchema struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Frequency  int      `json:"frequency"`
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to draft flashcards from study note text.
type GeminiGenerator struct {
	logger     *slog.Logger
	client     *genai.Client
	model      string
	maxRetries int
	baseDelay  time.Duration
}

// Ensure GeminiGenerator implements generation.Generator
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a generator from the LLM configuration.
// Returns generation.ErrInvalidConfig when the API key or model name is
// missing.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}

	return &GeminiGenerator{
		logger:     logger.With("component", "gemini_generator"),
		client:     client,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  2 * time.Second,
	}, nil
}

// GenerateCards implements generation.Generator.
func (g *GeminiGenerator) GenerateCards(
	ctx context.Context,
	noteText string,
	userID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	if strings.TrimSpace(noteText) == "" {
		return nil, generation.ErrEmptyNoteText
	}

	prompt := fmt.Sprintf(promptTemplate, noteText)

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.buildCards(response, userID, deckID)
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Permanent errors (blocked content, malformed responses) are returned
// immediately; only API transport failures are retried.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1,
			"model", g.model)

		resp, err := g.client.Models.GenerateContent(
			ctx,
			g.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err == nil {
			parsed, parseErr := g.parseResponse(resp)
			if parseErr == nil {
				return parsed, nil
			}
			// Malformed or blocked responses do not improve on retry.
			return nil, parseErr
		}

		lastErr = err
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if attempt >= g.maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrTransientFailure, g.maxRetries+1, lastErr)
}

// parseResponse validates the API response and decodes the JSON card list.
func (g *GeminiGenerator) parseResponse(resp *genai.GenerateContentResponse) (*responseSchema, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text.String()), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: response contained no cards", generation.ErrInvalidResponse)
	}

	return &parsed, nil
}

// buildCards converts the decoded schema into domain cards, normalizing the
// model's occasional out-of-schema values instead of failing the whole batch.
func (g *GeminiGenerator) buildCards(
	response *responseSchema,
	userID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0, len(response.Cards))
	for i, c := range response.Cards {
		content := domain.CardContent{
			Question:   strings.TrimSpace(c.Question),
			Answer:     strings.TrimSpace(c.Answer),
			Difficulty: domain.Difficulty(strings.ToLower(c.Difficulty)),
			Tags:       c.Tags,
			Frequency:  c.Frequency,
		}
		if !domain.ValidDifficulty(content.Difficulty) {
			content.Difficulty = domain.DifficultyMedium
		}
		if content.Frequency < domain.MinFrequency || content.Frequency > domain.MaxFrequency {
			content.Frequency = 3
		}

		card, err := domain.NewCard(userID, deckID, content)
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", generation.ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}
