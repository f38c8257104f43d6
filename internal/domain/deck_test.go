package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	deck, err := NewDeck(userID, "01-javascript", "JavaScript Deep Dive")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if deck.ID == uuid.Nil {
		t.Error("Expected non-nil deck ID")
	}
	if deck.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, deck.UserID)
	}
	if deck.CreatedAt.IsZero() || deck.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestDeckValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		topic   string
		title   string
		wantErr error
	}{
		{name: "numbered topic slug", topic: "14-flashcards", title: "Flashcards"},
		{name: "plain slug", topic: "react", title: "React"},
		{name: "empty topic is allowed", topic: "", title: "Misc"},
		{name: "empty title", topic: "react", title: "", wantErr: ErrEmptyDeckTitle},
		{name: "uppercase topic", topic: "React", title: "React", wantErr: ErrInvalidTopic},
		{name: "spaces in topic", topic: "react hooks", title: "Hooks", wantErr: ErrInvalidTopic},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDeck(uuid.New(), tc.topic, tc.title)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := NewDeck(uuid.Nil, "react", "React"); !errors.Is(err, ErrEmptyDeckUserID) {
		t.Errorf("Expected ErrEmptyDeckUserID, got %v", err)
	}
}
