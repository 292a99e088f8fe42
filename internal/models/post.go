// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry. PubDate may lie in the future: the post then stays
// off public listings until that moment passes, while its author can already
// open the detail page.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     time.Time  `json:"pub_date"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`

	// Virtual fields populated by store joins.
	Author       *User     `json:"author,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Location     *Location `json:"location,omitempty"`
	CommentCount int       `json:"comment_count"`
}

// Scheduled reports whether the post's publication date is still in the
// future relative to now.
func (p *Post) Scheduled(now time.Time) bool {
	return p.PubDate.After(now)
}
