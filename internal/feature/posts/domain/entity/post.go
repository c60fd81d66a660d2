// Package entity defines the domain entities for the posts feature.
package entity

import (
	"regexp"
	"strings"
	"time"
)

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Author is the populated subset of the owning user.
type Author struct {
	ID    uint
	Name  string
	Email string
}

// Post is a blog post. DeletedAt is non-nil once soft-deleted.
type Post struct {
	ID        uint
	Title     string
	Slug      string
	Content   string
	AuthorID  uint
	Author    *Author
	Status    Status
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// SetTitle trims and assigns the title and recomputes the slug.
func (p *Post) SetTitle(title string) {
	p.Title = strings.TrimSpace(title)
	p.Slug = Slugify(p.Title)
}

// IsDeleted reports whether the post has been soft-deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}

var (
	slugStrip = regexp.MustCompile(`[^\w\s\p{Z}-]`)
	slugSpace = regexp.MustCompile(`[\s\p{Z}]+`)
	slugDash  = regexp.MustCompile(`-+`)
)

// Slugify lower-cases title, drops characters other than word characters,
// whitespace and hyphens, turns whitespace runs into hyphens and collapses repeated hyphens.
//
//	Slugify("Getting Started with Node.js!") == "getting-started-with-nodejs"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	s = slugDash.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// NormalizeTags drops duplicate tags, keeping first occurrences in order.
// A nil input yields an empty, non-nil slice.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
