package models

import (
	"strings"
	"time"
)

// Scribble represents a blog post on the cave wall
type Scribble struct {
	ID          string     `json:"id" db:"id"`
	Slug        string     `json:"slug" db:"slug"`
	Title       string     `json:"title" db:"title"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	Content     string     `json:"content" db:"content"`
	PublishedAt time.Time  `json:"published_at" db:"published_at"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	Pinned      bool       `json:"pinned" db:"pinned"`
	PinnedAt    *time.Time `json:"pinned_at,omitempty" db:"pinned_at"`
	PinnedOrder *int       `json:"pinned_order,omitempty" db:"pinned_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Paragraphs splits the scribble content on blank lines.
func (s *Scribble) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(s.Content, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ScribbleView is the reader-facing shape of a scribble, with the content
// split into paragraphs.
type ScribbleView struct {
	ID          string     `json:"id,omitempty"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt time.Time  `json:"published_at"`
	Paragraphs  []string   `json:"paragraphs"`
	Pinned      bool       `json:"pinned"`
	PinnedAt    *time.Time `json:"pinned_at,omitempty"`
	PinnedOrder *int       `json:"pinned_order,omitempty"`
}

// View converts a scribble to its reader-facing shape.
func (s *Scribble) View() *ScribbleView {
	return &ScribbleView{
		ID:          s.ID,
		Slug:        s.Slug,
		Title:       s.Title,
		Excerpt:     s.Excerpt,
		PublishedAt: s.PublishedAt,
		Paragraphs:  s.Paragraphs(),
		Pinned:      s.Pinned,
		PinnedAt:    s.PinnedAt,
		PinnedOrder: s.PinnedOrder,
	}
}
