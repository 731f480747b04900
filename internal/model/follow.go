package model

import "time"

// Follow is the directed edge "UserID reads AuthorID".
// The composite unique index keeps the pair single at the storage level;
// the handler layer additionally refuses self-follows.
type Follow struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_follower;uniqueIndex:uk_follow_pair,priority:1" json:"user_id"`
	AuthorID  uint64    `gorm:"not null;index:idx_followed;uniqueIndex:uk_follow_pair,priority:2" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
