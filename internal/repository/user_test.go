package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"warble/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "wren", "wren@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "wren", Email: "wren@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(2, "finch", "finch@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("finch@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "finch@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "finch", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("missing@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("finch@example.com", 1).
			WillReturnError(errors.New("connection timeout"))

		user, err := repo.GetByEmail(ctx, "finch@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{
		FullName: "Wren Park",
		Username: "wren",
		Email:    "wren@example.com",
		Password: "hashed",
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{
		FullName: "Other Wren",
		Username: "wren",
		Email:    "other@example.com",
		Password: "hashed",
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_UpdateFields_Partial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		FullName: "Wren Park",
		Username: "wren",
		Email:    "wren@example.com",
		Password: "hashed",
		Bio:      "old bio",
		Link:     "https://wren.dev",
	}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]any{"bio": "new bio"}))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new bio", got.Bio)
	assert.Equal(t, "https://wren.dev", got.Link, "untouched fields keep their values")
}

func TestUserRepository_GetByID_CacheKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	user := &models.User{
		FullName: "Wren Park",
		Username: "wren",
		Email:    "wren@example.com",
		Password: hash,
		Bio:      "old bio",
	}
	require.NoError(t, repo.Create(ctx, user))

	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, first.Password)

	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, second.Password, "a cache hit carries the stored hash")

	// A profile edit after cached reads must leave the credential intact.
	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]any{"bio": "new bio"}))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, hash, stored.Password)
	assert.Equal(t, "new bio", stored.Bio)
}

func TestUserRepository_ListSuggestions(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	me := &models.User{FullName: "Me", Username: "me", Email: "me@example.com", Password: "x"}
	followed := &models.User{FullName: "Followed", Username: "followed", Email: "followed@example.com", Password: "x"}
	stranger := &models.User{FullName: "Stranger", Username: "stranger", Email: "stranger@example.com", Password: "x"}
	for _, u := range []*models.User{me, followed, stranger} {
		require.NoError(t, userRepo.Create(ctx, u))
	}
	require.NoError(t, followRepo.Follow(ctx, me.ID, followed.ID))

	suggestions, err := userRepo.ListSuggestions(ctx, me.ID, 5)
	require.NoError(t, err)

	require.Len(t, suggestions, 1, "self and already-followed users are excluded")
	assert.Equal(t, stranger.ID, suggestions[0].ID)
}
