// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"warble/internal/models"
	"warble/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded account gets so a
// developer can log in as any of them.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand

	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	// One hash shared by all seeded users; bcrypt per user is needlessly slow.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FullName:   gofakeit.Name(),
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		Password:   f.passwordHash,
		Bio:        gofakeit.Sentence(10),
		Link:       gofakeit.URL(),
		ProfileImg: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CoverImg:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user with a
// realistic created_at spread over the past maxDays days.
func (f *Factory) CreatePost(user *models.User, maxDays int, overrides ...func(*models.Post)) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 30
	}
	post := &models.Post{
		Text:   gofakeit.Sentence(f.rand.Intn(20) + 3),
		UserID: user.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rand.Intn(maxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rand.Intn(24)) * time.Hour),
	}
	// Roughly a third of posts carry an image.
	if f.rand.Intn(3) == 0 {
		post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a sample comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(f.rand.Intn(12) + 2),
		UserID: user.ID,
		PostID: post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Like records a like through the repository so the owner notification is
// produced exactly as it would be in production.
func (f *Factory) Like(ctx context.Context, user *models.User, post *models.Post) error {
	return repository.NewPostRepository(f.db).Like(ctx, user.ID, post.ID, post.UserID)
}

// Follow records a follow edge through the repository so the mirror tables
// and notification stay consistent.
func (f *Factory) Follow(ctx context.Context, follower, target *models.User) error {
	return repository.NewFollowRepository(f.db).Follow(ctx, follower.ID, target.ID)
}
