package ingest

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Post is one corpus item supplied by a post source. Only Text feeds the
// analysis; the remaining fields are carried for caching and display.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Validate checks the fields required to cache a post.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post ID is required")
	}
	return nil
}

// Texts returns the text of every post, preserving order.
func Texts(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Text
	}
	return out
}

// FromTexts wraps bare strings as posts with positional IDs.
func FromTexts(texts []string) []Post {
	out := make([]Post, len(texts))
	for i, text := range texts {
		out[i] = Post{ID: strconv.Itoa(i), Text: text}
	}
	return out
}
