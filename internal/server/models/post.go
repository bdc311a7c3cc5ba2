// Package models defines the persisted entities of the publishing platform.
// JSON names match the documents written by the local store and the API.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Publication is the publish state of a post.
//
//   - PublicationUnset: no value stored (legacy rows, hand-edited documents).
//     Treated as published.
//   - Published: explicitly visible.
//   - Unpublished: explicitly hidden from public listings. This is the only
//     state that hides a post.
//
// It serializes as JSON true/false (Unset is omitted or null) and as a
// nullable boolean column.
type Publication int8

const (
	PublicationUnset Publication = iota
	Published
	Unpublished
)

// PublicationOf maps an optional boolean onto the tri-state.
func PublicationOf(v *bool) Publication {
	switch {
	case v == nil:
		return PublicationUnset
	case *v:
		return Published
	default:
		return Unpublished
	}
}

// Visible reports whether the post belongs in public listings.
func (p Publication) Visible() bool { return p != Unpublished }

// Bool is the inverse of PublicationOf.
func (p Publication) Bool() *bool {
	var v bool
	switch p {
	case Published:
		v = true
	case Unpublished:
		v = false
	default:
		return nil
	}
	return &v
}

func (p Publication) String() string {
	switch p {
	case Published:
		return "published"
	case Unpublished:
		return "unpublished"
	default:
		return "unset"
	}
}

func (p Publication) MarshalJSON() ([]byte, error) {
	switch p {
	case Published:
		return []byte("true"), nil
	case Unpublished:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (p *Publication) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("is_published: %w", err)
	}
	*p = PublicationOf(v)
	return nil
}

// Value stores Unset as NULL.
func (p Publication) Value() (driver.Value, error) {
	switch p {
	case Published:
		return true, nil
	case Unpublished:
		return false, nil
	default:
		return nil, nil
	}
}

func (p *Publication) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = PublicationUnset
	case bool:
		*p = PublicationOf(&v)
	default:
		return fmt.Errorf("cannot scan %T into Publication", src)
	}
	return nil
}

// Post is a Markdown article.
type Post struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt"`
	Category      string      `json:"category"`
	Author        string      `json:"author"`
	FeaturedImage string      `json:"featured_image"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
	IsPublished   Publication `json:"is_published,omitempty"`
}

// PostPatch carries a partial update: nil fields are left untouched.
type PostPatch struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Category      *string `json:"category,omitempty"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	IsPublished   *bool   `json:"is_published,omitempty"`
}

// Apply copies the supplied fields onto p and stamps updated_at.
func (patch PostPatch) Apply(p *Post, at time.Time) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = *patch.FeaturedImage
	}
	if patch.IsPublished != nil {
		p.IsPublished = PublicationOf(patch.IsPublished)
	}
	p.UpdatedAt = &at
}
