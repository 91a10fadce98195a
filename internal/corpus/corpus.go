package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 1 << 20

// Item is one exported post as stored in a JSONL corpus file.
type Item struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}

// LineError records a line that could not be decoded.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Corpus is the result of loading a post file. Skipped lists malformed
// lines; the remaining posts are still usable.
type Corpus struct {
	Posts   []ingest.Post
	Skipped []LineError
}

// LoadFile loads posts from path. Files ending in .txt hold one post per
// line; anything else is read as JSONL.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	var c Corpus
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		c, err = ReadLines(f)
	} else {
		c, err = ReadJSONL(f)
	}
	if err != nil {
		return Corpus{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ReadJSONL decodes one Item per non-blank line. Items with an empty text
// but an html body have the HTML flattened to text. Items without an ID
// get their line number as ID.
func ReadJSONL(r io.Reader) (Corpus, error) {
	var c Corpus
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			c.Skipped = append(c.Skipped, LineError{Line: lineNo, Err: err})
			continue
		}
		c.Posts = append(c.Posts, item.post(lineNo))
	}
	if err := scanner.Err(); err != nil {
		return c, err
	}
	if len(c.Posts) == 0 {
		return c, fmt.Errorf("no valid posts found")
	}
	return c, nil
}

// ReadLines treats every non-blank line as a post text.
func ReadLines(r io.Reader) (Corpus, error) {
	var c Corpus
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		c.Posts = append(c.Posts, ingest.Post{ID: strconv.Itoa(lineNo), Text: text})
	}
	if err := scanner.Err(); err != nil {
		return c, err
	}
	if len(c.Posts) == 0 {
		return c, fmt.Errorf("no valid posts found")
	}
	return c, nil
}

func (it Item) post(lineNo int) ingest.Post {
	text := it.Text
	if text == "" && it.HTML != "" {
		text = StripHTML(it.HTML)
	}
	id := it.ID
	if id == "" {
		id = strconv.Itoa(lineNo)
	}
	return ingest.Post{
		ID:        id,
		Author:    it.Author,
		Text:      text,
		CreatedAt: it.CreatedAt,
	}
}
