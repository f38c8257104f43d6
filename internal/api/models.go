package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// CreateDeckRequest defines the payload for creating an empty deck.
type CreateDeckRequest struct {
	Topic       string   `json:"topic,omitempty"`
	Title       string   `json:"title"       validate:"required,min=1,max=200"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ImportDeckRequest defines the payload for importing a deck from Markdown
// text submitted inline.
type ImportDeckRequest struct {
	// Source names the deck file for dedupe and title fallback purposes.
	Source string `json:"source" validate:"required,min=1,max=500"`

	// Markdown is the raw deck file content.
	Markdown string `json:"markdown" validate:"required,min=1"`
}

// DeckResponse represents the response data for a deck.
type DeckResponse struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	SourcePath  string    `json:"source_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImportDeckResponse reports the outcome of a deck import.
type ImportDeckResponse struct {
	Deck      DeckResponse `json:"deck"`
	CardCount int          `json:"card_count"`
}

// ImportDirRequest defines the payload for importing a directory of deck
// files as background tasks. Dir is relative to the configured content
// root; empty means the whole content tree.
type ImportDirRequest struct {
	Dir string `json:"dir" validate:"omitempty,max=255"`
}

// ImportDirResponse reports the deck import tasks queued for a directory.
type ImportDirResponse struct {
	TaskIDs []string `json:"task_ids"`
	Status  string   `json:"status"`
}

// DeckProgressResponse summarizes study progress over one deck.
type DeckProgressResponse struct {
	DeckID       string  `json:"deck_id"`
	TotalCards   int     `json:"total_cards"`
	LearnedCards int     `json:"learned_cards"`
	DueCards     int     `json:"due_cards"`
	ReviewCount  int     `json:"review_count"`
	CorrectCount int     `json:"correct_count"`
	Accuracy     float64 `json:"accuracy"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	DeckID    string      `json:"deck_id"`
	Content   interface{} `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SubmitAnswerRequest represents the request body for submitting a card
// review answer.
type SubmitAnswerRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=again hard good easy"`
}

// PostponeCardRequest represents the request body for postponing a card's
// next review.
type PostponeCardRequest struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// UpdateCardRequest represents the request body for editing a card's content.
type UpdateCardRequest struct {
	Question   string   `json:"question"   validate:"required,min=1"`
	Answer     string   `json:"answer"     validate:"required,min=1"`
	Difficulty string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Tags       []string `json:"tags,omitempty"`
	Frequency  int      `json:"frequency"  validate:"required,min=1,max=5"`
}

// UserCardStatsResponse represents the response data for user card statistics.
type UserCardStatsResponse struct {
	UserID             string    `json:"user_id"`
	CardID             string    `json:"card_id"`
	Interval           int       `json:"interval"`
	EaseFactor         float64   `json:"ease_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	LastReviewedAt     time.Time `json:"last_reviewed_at"`
	NextReviewAt       time.Time `json:"next_review_at"`
	ReviewCount        int       `json:"review_count"`
	CorrectCount       int       `json:"correct_count"`
}

// GenerateCardsRequest asks for flashcards to be drafted from note text and
// appended to an existing deck.
type GenerateCardsRequest struct {
	DeckID   string `json:"deck_id"   validate:"required,uuid"`
	NoteText string `json:"note_text" validate:"required,min=1,max=20000"`
}

// GenerateCardsResponse acknowledges a queued generation task.
type GenerateCardsResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ContentSectionResponse describes one study-content document.
type ContentSectionResponse struct {
	Topic    string `json:"topic"`
	Order    int    `json:"order"`
	FileName string `json:"file_name"`
	Title    string `json:"title"`
}
