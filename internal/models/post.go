// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in Warble. A post must carry non-empty text or a
// non-empty image URL; the create path enforces the invariant.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text" json:"text"`
	Image     string         `json:"image"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	Likes     []Like         `gorm:"foreignKey:PostID" json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasContent reports whether the post satisfies the text-or-image invariant.
func (p *Post) HasContent() bool {
	return p.Text != "" || p.Image != ""
}
