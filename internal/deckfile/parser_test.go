package deckfile

import (
	"strings"
	"testing"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `---
title: JavaScript Closures
topic: 01-javascript
description: Closure questions that come up constantly.
tags:
  - javascript
---

# Ignored H1 because frontmatter set the title

## What is a closure?
<!-- difficulty: hard | tags: closures, scope | frequency: 5 -->
A function bundled with references to its surrounding lexical scope.

It keeps outer variables alive after the outer function returns.

### Explain the event loop
<!-- frequency: 4 -->
The runtime model that processes the task queue between renders.
`

func TestParseBytesFullDeck(t *testing.T) {
	t.Parallel()

	file, err := ParseBytes([]byte(sampleDeck))
	require.NoError(t, err)

	assert.Equal(t, "JavaScript Closures", file.Title)
	assert.Equal(t, "01-javascript", file.Topic)
	assert.Equal(t, "Closure questions that come up constantly.", file.Description)
	assert.Equal(t, []string{"javascript"}, file.Tags)
	require.Len(t, file.Cards, 2)

	first := file.Cards[0]
	assert.Equal(t, "What is a closure?", first.Question)
	assert.Contains(t, first.Answer, "lexical scope")
	assert.Contains(t, first.Answer, "keeps outer variables alive")
	assert.Equal(t, domain.DifficultyHard, first.Difficulty)
	assert.Equal(t, []string{"closures", "scope"}, first.Tags)
	assert.Equal(t, 5, first.Frequency)

	second := file.Cards[1]
	assert.Equal(t, "Explain the event loop", second.Question)
	assert.Equal(t, domain.DifficultyMedium, second.Difficulty, "difficulty should default to medium")
	assert.Equal(t, 4, second.Frequency)
	assert.Equal(t, []string{"javascript"}, second.Tags, "cards without tags inherit deck tags")
}

func TestParseBytesWithoutFrontmatter(t *testing.T) {
	t.Parallel()

	input := `# CSS Layout

## How does flexbox distribute free space?
Via flex-grow proportions among items on the main axis.
`
	file, err := ParseBytes([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "CSS Layout", file.Title, "H1 becomes the title when frontmatter has none")
	assert.Empty(t, file.Topic)
	require.Len(t, file.Cards, 1)
	assert.Equal(t, 3, file.Cards[0].Frequency, "frequency should default to 3")
	assert.Empty(t, file.Cards[0].Tags)
}

func TestParseBytesKeepsHeadingsInsideCodeFences(t *testing.T) {
	t.Parallel()

	input := "# Shell Basics\n\n" +
		"## How do you write a comment in bash?\n" +
		"Use the hash character:\n\n" +
		"```bash\n" +
		"## this is a comment block marker\n" +
		"# so is this\n" +
		"<!-- difficulty: hard -->\n" +
		"```\n\n" +
		"Everything after # on a line is ignored.\n\n" +
		"## How do you nest a markdown example?\n" +
		"With a tilde fence:\n\n" +
		"~~~\n" +
		"### A literal heading\n" +
		"~~~\n"

	file, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	require.Len(t, file.Cards, 2, "fenced marker lines must not open new cards")

	first := file.Cards[0]
	assert.Equal(t, "How do you write a comment in bash?", first.Question)
	assert.Contains(t, first.Answer, "## this is a comment block marker")
	assert.Contains(t, first.Answer, "Everything after # on a line is ignored.")
	assert.Equal(t, domain.DifficultyMedium, first.Difficulty,
		"metadata comments inside a fence are literal text")

	second := file.Cards[1]
	assert.Equal(t, "How do you nest a markdown example?", second.Question)
	assert.Contains(t, second.Answer, "### A literal heading")
}

func TestParseBytesMetadataAnyOrder(t *testing.T) {
	t.Parallel()

	input := `## Question one
<!-- frequency: 2 | difficulty: easy -->
Answer one.
`
	file, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	require.Len(t, file.Cards, 1)
	assert.Equal(t, domain.DifficultyEasy, file.Cards[0].Difficulty)
	assert.Equal(t, 2, file.Cards[0].Frequency)
}

func TestParseBytesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantSection string
		wantMsg     string
	}{
		{
			name:        "empty_answer",
			input:       "## Lonely question\n\n## Next question\nHas an answer.\n",
			wantSection: "Lonely question",
			wantMsg:     "no answer body",
		},
		{
			name:        "invalid_difficulty",
			input:       "## Q\n<!-- difficulty: brutal -->\nA.\n",
			wantSection: "Q",
			wantMsg:     "invalid difficulty",
		},
		{
			name:        "frequency_too_high",
			input:       "## Q\n<!-- frequency: 6 -->\nA.\n",
			wantSection: "Q",
			wantMsg:     "invalid frequency",
		},
		{
			name:        "frequency_not_a_number",
			input:       "## Q\n<!-- frequency: often -->\nA.\n",
			wantSection: "Q",
			wantMsg:     "invalid frequency",
		},
		{
			name:        "malformed_metadata_field",
			input:       "## Q\n<!-- difficulty hard -->\nA.\n",
			wantSection: "Q",
			wantMsg:     "malformed metadata",
		},
		{
			name:    "unterminated_frontmatter",
			input:   "---\ntitle: Broken\n",
			wantMsg: "unterminated frontmatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantSection, parseErr.Section)
			assert.Contains(t, parseErr.Error(), tt.wantMsg)
		})
	}
}

func TestParseBytesIgnoresUnknownMetadataKeys(t *testing.T) {
	t.Parallel()

	input := `## Q
<!-- difficulty: easy | reviewer: someone -->
A.
`
	file, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	require.Len(t, file.Cards, 1)
	assert.Equal(t, domain.DifficultyEasy, file.Cards[0].Difficulty)
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	file, err := Parse(strings.NewReader("## Q\nA.\n"))
	require.NoError(t, err)
	require.Len(t, file.Cards, 1)
	assert.Equal(t, "Q", file.Cards[0].Question)
	assert.Equal(t, "A.", file.Cards[0].Answer)
}
