package models

// Follow represents a directed follow edge: UserID receives AuthorID's
// posts in their personalized feed. Uniqueness of the (user, author)
// pair is checked at the application layer before insert, not by a
// database constraint.
type Follow struct {
	ID       int64 `gorm:"primaryKey;autoIncrement;column:id"`
	UserID   int64 `gorm:"not null;index:chirp_follows_ix1;column:user_id"`
	AuthorID int64 `gorm:"not null;index:chirp_follows_ix2;column:author_id"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "chirp_follows"
}
