// Package domain defines the core entities of the study service: users,
// flashcard decks, cards, per-card review statistics, and review logs.
// Entities validate themselves on construction and expose sentinel errors
// for each failure mode so callers can match with errors.Is.
package domain
