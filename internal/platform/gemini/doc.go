// Package gemini implements the generation.Generator interface on top of
// Google's Gemini API via the google.golang.org/genai client.
package gemini
