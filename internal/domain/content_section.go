package domain

// ContentSection is a catalog entry for one study-content Markdown file.
// Sections are read-only: the catalog is rebuilt from the content directory,
// never edited through the API.
type ContentSection struct {
	Topic    string `json:"topic"`    // Topic slug, e.g. "01-javascript"
	Order    int    `json:"order"`    // Ordering prefix parsed from the directory name
	FileName string `json:"file_name"`
	Title    string `json:"title"` // First H1 heading, falling back to the file name
}
