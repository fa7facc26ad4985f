package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FullName   string         `gorm:"not null" json:"full_name"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Link       string         `json:"link"`
	ProfileImg string         `json:"profile_img"`
	CoverImg   string         `json:"cover_img"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Posts     []Post      `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Following []Following `gorm:"foreignKey:UserID" json:"following,omitempty"`
	Followers []Follower  `gorm:"foreignKey:UserID" json:"followers,omitempty"`
}

// PublicProfile is the shape of a user exposed to other users.
type PublicProfile struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	ProfileImg string    `json:"profile_img"`
	CoverImg   string    `json:"cover_img"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public returns the user's profile without credentials or relations.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Bio:        u.Bio,
		Link:       u.Link,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
		CreatedAt:  u.CreatedAt,
	}
}
