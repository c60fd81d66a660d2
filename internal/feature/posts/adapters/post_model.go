// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"gorm.io/gorm"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
)

// PostModel is the posts table row.
type PostModel struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"size:255;not null"`
	Slug    string `gorm:"uniqueIndex;size:255;not null"`
	Content string `gorm:"type:text;not null"`

	AuthorID uint            `gorm:"not null;index"`
	Author   authentity.User `gorm:"foreignKey:AuthorID"`

	Status string         `gorm:"size:20;not null;default:draft;index"`
	Tags   []PostTagModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (PostModel) TableName() string { return "posts" }

// PostTagModel is one tag of a post. A tag appears at most once per post.
type PostTagModel struct {
	ID     uint   `gorm:"primaryKey"`
	PostID uint   `gorm:"not null;uniqueIndex:idx_post_tag"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_post_tag;index"`
}

// TableName specifies the table name for GORM.
func (PostTagModel) TableName() string { return "post_tags" }

// toEntity converts a loaded row into the domain post.
// Author is set only when the association was preloaded.
func toEntity(m *PostModel) *entity.Post {
	p := &entity.Post{
		ID:        m.ID,
		Title:     m.Title,
		Slug:      m.Slug,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		Status:    entity.Status(m.Status),
		Tags:      make([]string, 0, len(m.Tags)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, t := range m.Tags {
		p.Tags = append(p.Tags, t.Name)
	}
	if m.Author.ID != 0 {
		p.Author = &entity.Author{ID: m.Author.ID, Name: m.Author.Name, Email: m.Author.Email}
	}
	if m.DeletedAt.Valid {
		at := m.DeletedAt.Time
		p.DeletedAt = &at
	}
	return p
}

// fromEntity converts a domain post into a row. Author is never written through the post.
func fromEntity(p *entity.Post) *PostModel {
	m := &PostModel{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Status:    string(p.Status),
		Tags:      tagModels(p.ID, p.Tags),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}
	return m
}

func tagModels(postID uint, tags []string) []PostTagModel {
	out := make([]PostTagModel, 0, len(tags))
	for _, name := range tags {
		out = append(out, PostTagModel{PostID: postID, Name: name})
	}
	return out
}
