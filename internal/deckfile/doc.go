// Package deckfile parses flashcard deck Markdown files and scans the
// study-content directory tree. A deck file carries optional YAML
// frontmatter with deck metadata; each H2/H3 section is one card whose
// heading is the question and whose body is the answer, with an optional
// metadata comment attaching difficulty, tags and interview frequency.
package deckfile
