package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a post. Deleting the post or the
// author removes the comment.
type Comment struct {
	ID         int64        `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     int64        `gorm:"not null;index:chirp_comments_ix1;column:post_id"`
	AuthorID   int64        `gorm:"not null;index:chirp_comments_ix2;column:author_id"`
	Text       string       `gorm:"type:text;not null;column:text"`
	CreatedAt  time.Time    `gorm:"not null;index:chirp_comments_ix3;column:created_at"`
	ModifiedAt sql.NullTime `gorm:"column:modified_at"`

	// Relationships
	Post   *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "chirp_comments"
}

func (c Comment) String() string {
	return cut(c.Text)
}
