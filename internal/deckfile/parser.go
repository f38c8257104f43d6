package deckfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the parsed form of one flashcard deck Markdown file.
type File struct {
	Title       string
	Topic       string
	Description string
	Tags        []string
	Cards       []domain.CardContent
}

// ParseError describes a problem in a deck file, naming the card section it
// was found in when one applies.
type ParseError struct {
	Section string
	Line    int
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("deck file line %d, section %q: %s", e.Line, e.Section, e.Msg)
	}
	return fmt.Sprintf("deck file line %d: %s", e.Line, e.Msg)
}

// frontmatter is the YAML block an author may place at the top of a deck
// file, fenced by "---" lines.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Topic       string   `yaml:"topic"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

var (
	cardHeadingRegex = regexp.MustCompile(`^#{2,3}\s+(.+?)\s*$`)
	metaCommentRegex = regexp.MustCompile(`^<!--\s*(.*?)\s*-->$`)
)

// Parse reads a deck Markdown file and returns its metadata and cards.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a deck Markdown file held in memory.
func ParseBytes(data []byte) (*File, error) {
	file := &File{}

	body, fmLines, err := extractFrontmatter(data, file)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		current *cardSection
		lineNo  = fmLines
		inFence bool
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		card, err := current.build(file.Tags)
		if err != nil {
			return err
		}
		file.Cards = append(file.Cards, *card)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		// Heading and metadata markers inside a fenced code block are
		// literal answer text, not structure.
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			if current != nil {
				current.body = append(current.body, line)
			}
			continue
		}
		if inFence {
			if current != nil {
				current.body = append(current.body, line)
			}
			continue
		}

		if m := cardHeadingRegex.FindStringSubmatch(line); m != nil {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &cardSection{question: m[1], line: lineNo}
			continue
		}

		if strings.HasPrefix(line, "# ") {
			// H1 is the deck title unless frontmatter already set one.
			if err := flush(); err != nil {
				return nil, err
			}
			if file.Title == "" {
				file.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}
			continue
		}

		if current == nil {
			continue
		}

		if m := metaCommentRegex.FindStringSubmatch(trimmed); m != nil {
			if err := current.applyMeta(m[1]); err != nil {
				return nil, err
			}
			continue
		}

		current.body = append(current.body, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan deck file: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return file, nil
}

// extractFrontmatter strips a leading "---" fenced YAML block, filling the
// file metadata from it. It returns the remaining body and the number of
// lines consumed.
func extractFrontmatter(data []byte, file *File) ([]byte, int, error) {
	const fence = "---"

	trimmed := bytes.TrimLeft(data, "\n\r \t")
	if !bytes.HasPrefix(trimmed, []byte(fence)) {
		return data, 0, nil
	}

	rest := trimmed[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return nil, 0, &ParseError{Line: 1, Msg: "unterminated frontmatter fence"}
	}

	block := rest[:end]
	var fm frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, 0, &ParseError{Line: 1, Msg: fmt.Sprintf("invalid frontmatter: %v", err)}
	}

	file.Title = fm.Title
	file.Topic = fm.Topic
	file.Description = fm.Description
	file.Tags = fm.Tags

	body := rest[end+len("\n"+fence):]
	consumed := bytes.Count(trimmed[:len(trimmed)-len(body)], []byte("\n"))
	return body, consumed, nil
}

// cardSection accumulates one H2/H3 section while scanning.
type cardSection struct {
	question   string
	line       int
	body       []string
	difficulty domain.Difficulty
	tags       []string
	frequency  int
}

// applyMeta parses a metadata comment body of the form
// "difficulty: hard | tags: closures, scope | frequency: 5".
// Fields may appear in any order and any subset.
func (c *cardSection) applyMeta(meta string) error {
	for _, field := range strings.Split(meta, "|") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		key, value, found := strings.Cut(field, ":")
		if !found {
			return &ParseError{
				Section: c.question,
				Line:    c.line,
				Msg:     fmt.Sprintf("malformed metadata field %q", field),
			}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "difficulty":
			d := domain.Difficulty(strings.ToLower(value))
			if !domain.ValidDifficulty(d) {
				return &ParseError{
					Section: c.question,
					Line:    c.line,
					Msg:     fmt.Sprintf("invalid difficulty %q", value),
				}
			}
			c.difficulty = d
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					c.tags = append(c.tags, tag)
				}
			}
		case "frequency":
			n, err := strconv.Atoi(value)
			if err != nil || n < domain.MinFrequency || n > domain.MaxFrequency {
				return &ParseError{
					Section: c.question,
					Line:    c.line,
					Msg:     fmt.Sprintf("invalid frequency %q, must be %d-%d", value, domain.MinFrequency, domain.MaxFrequency),
				}
			}
			c.frequency = n
		default:
			// Unknown keys are ignored so content authors can annotate
			// sections without breaking imports.
		}
	}
	return nil
}

// build finalizes the section into card content, applying defaults:
// difficulty medium, frequency 3, deck tags when the card has none.
func (c *cardSection) build(deckTags []string) (*domain.CardContent, error) {
	answer := strings.TrimSpace(strings.Join(c.body, "\n"))
	if answer == "" {
		return nil, &ParseError{
			Section: c.question,
			Line:    c.line,
			Msg:     "card has no answer body",
		}
	}

	content := domain.CardContent{
		Question:   c.question,
		Answer:     answer,
		Difficulty: c.difficulty,
		Tags:       c.tags,
		Frequency:  c.frequency,
	}
	if content.Difficulty == "" {
		content.Difficulty = domain.DifficultyMedium
	}
	if content.Frequency == 0 {
		content.Frequency = 3
	}
	if len(content.Tags) == 0 {
		content.Tags = append([]string(nil), deckTags...)
	}

	if err := content.Validate(); err != nil {
		return nil, &ParseError{
			Section: c.question,
			Line:    c.line,
			Msg:     err.Error(),
		}
	}

	return &content, nil
}
