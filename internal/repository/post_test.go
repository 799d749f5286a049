package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestLikeUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Text: "hello"}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Like(ctx, post.ID, 1))
	assert.Error(t, repo.Like(ctx, post.ID, 1), "the storage layer rejects duplicate likes")

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestDeleteRemovesSubCollections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Text: "hello"}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Like(ctx, post.ID, 2))
	require.NoError(t, repo.AddComment(ctx, &models.Comment{PostID: post.ID, UserID: 2, Text: "hi"}))

	require.NoError(t, repo.Delete(ctx, post.ID))

	var likes, comments int64
	db.Model(&models.Like{}).Count(&likes)
	db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, likes)
	assert.Zero(t, comments)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}
