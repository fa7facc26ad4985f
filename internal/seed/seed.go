package seed

import (
	"context"
	"log"

	"warble/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	MaxDays         int
}

// DefaultOptions is a small but lively social mesh.
func DefaultOptions() Options {
	return Options{
		Users:           12,
		PostsPerUser:    4,
		CommentsPerPost: 2,
		MaxDays:         30,
	}
}

// Run populates the database with a demo social mesh: users, posts,
// comments, likes, and a follow graph with the notifications the follow and
// like paths produce. It is idempotent only in the sense that re-running
// adds more data; it never deletes.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	f, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users (password %q)", len(users), DefaultPassword)

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user, opts.MaxDays)
			if err != nil {
				return err
			}
			posts = append(posts, post)
		}
	}
	log.Printf("seeded %d posts", len(posts))

	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}

	// Every user follows roughly a third of the others and likes a handful
	// of posts; duplicates are skipped rather than failed.
	for _, user := range users {
		for _, target := range users {
			if user.ID == target.ID || f.rand.Intn(3) != 0 {
				continue
			}
			if err := f.Follow(ctx, user, target); err != nil && !isConflict(err) {
				return err
			}
		}
		for i := 0; i < 5 && len(posts) > 0; i++ {
			post := posts[f.rand.Intn(len(posts))]
			if err := f.Like(ctx, user, post); err != nil && !isConflict(err) {
				return err
			}
		}
	}

	log.Println("seed complete")
	return nil
}

func isConflict(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == "CONFLICT"
}
