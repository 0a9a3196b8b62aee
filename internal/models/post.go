package models

import (
	"database/sql"
	"time"
)

// Post represents an authored post, optionally tagged to a group.
// The group reference is nulled when the group is deleted; deleting
// the author removes the post.
type Post struct {
	ID         int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Text       string        `gorm:"type:text;not null;column:text"`
	AuthorID   int64         `gorm:"not null;index:chirp_posts_ix1;column:author_id"`
	GroupID    sql.NullInt64 `gorm:"index:chirp_posts_ix2;column:group_id"`
	Image      string        `gorm:"type:varchar(1024);not null;default:'';column:image"`
	CreatedAt  time.Time     `gorm:"not null;index:chirp_posts_ix3;column:created_at"`
	ModifiedAt sql.NullTime  `gorm:"index:chirp_posts_ix4;column:modified_at"`

	// Relationships
	Author *User  `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Group  *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "chirp_posts"
}

func (p Post) String() string {
	return cut(p.Text)
}
