package models

import "time"

// The follow graph is stored redundantly in two mirrored tables: a
// Following row (UserID follows FollowingID) always has a matching
// Follower row (UserID is followed by FollowerID). The repository writes
// and removes both inside a single transaction so the mirror cannot drift.

// Following records that UserID follows FollowingID.
type Following struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_following_pair" json:"user_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_following_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Follower records that UserID is followed by FollowerID.
type Follower struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"user_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}
