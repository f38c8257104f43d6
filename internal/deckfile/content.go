package deckfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
)

// topicDirRegex matches topic directories such as "01-javascript" or
// "14-flashcards".
var topicDirRegex = regexp.MustCompile(`^(\d{2})-[a-z0-9]+(-[a-z0-9]+)*$`)

// ScanContentDir walks the study-content root and builds the ContentSection
// catalog. Only directories matching the NN-slug naming scheme are scanned;
// within them, only Markdown files. Sections are ordered by topic prefix and
// then file name.
func ScanContentDir(root string) ([]domain.ContentSection, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory: %w", err)
	}

	var sections []domain.ContentSection
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m := topicDirRegex.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		order, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		topicSections, err := scanTopicDir(root, entry.Name(), order)
		if err != nil {
			return nil, err
		}
		sections = append(sections, topicSections...)
	}

	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].FileName < sections[j].FileName
	})

	return sections, nil
}

func scanTopicDir(root, topic string, order int) ([]domain.ContentSection, error) {
	dir := filepath.Join(root, topic)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic directory %s: %w", topic, err)
	}

	var sections []domain.ContentSection
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		title, err := firstH1(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = strings.TrimSuffix(entry.Name(), ".md")
		}

		sections = append(sections, domain.ContentSection{
			Topic:    topic,
			Order:    order,
			FileName: entry.Name(),
			Title:    title,
		})
	}

	return sections, nil
}

// firstH1 returns the text of the first top-level heading in a Markdown
// file, or "" when the file has none.
func firstH1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open content file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# ")), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan content file: %w", err)
	}

	return "", nil
}
