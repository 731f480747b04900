package model

import "time"

const TextLimit = 200

type Post struct {
	ID       uint64  `gorm:"primaryKey" json:"id"`
	Text     string  `gorm:"size:200;not null" json:"text"`
	AuthorID uint64  `gorm:"not null;index:idx_author_created,priority:1" json:"author_id"`
	GroupID  *uint64 `gorm:"index" json:"group_id"`
	// Image is the blob name under the media store; empty when the post has none.
	Image     string `gorm:"size:255" json:"image"`
	ImageType string `gorm:"size:64" json:"image_type"`
	// CreatedAt is assigned once at insert; updates never touch it.
	CreatedAt time.Time `gorm:"index:idx_author_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Group  *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group"`
}
