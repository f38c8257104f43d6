// Package generation defines the boundary between the application core and
// external language-model services used to draft flashcards from study
// notes. Services depend on the Generator interface; the concrete Gemini
// implementation lives in platform/gemini.
package generation
