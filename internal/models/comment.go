package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader's note on a post. Only its author may edit or
// delete it.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store joins.
	Author *User `json:"author,omitempty"`
}
