package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hash", Name: name}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestPostRepository_Create_DuplicateTitle(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author@example.com", "Author")

	first := &models.Post{Title: "Unique Title", Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, first))

	second := &models.Post{Title: "Unique Title", Subtitle: "s2", Date: "May 2, 2026", Body: "b2", AuthorID: author.ID}
	err := postRepo.Create(ctx, second)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostRepository_GetByID_PreloadsAuthor(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author@example.com", "Author")
	post := &models.Post{Title: "Hello", Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Author", got.Author.Name)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)

	_, err := postRepo.GetByID(context.Background(), 404)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author@example.com", "Author")
	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, postRepo.Create(ctx, &models.Post{
			Title: title, Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID,
		}))
	}

	posts, err := postRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Third", posts[0].Title)
	assert.Equal(t, "First", posts[2].Title)
}

func TestPostRepository_DeleteWithComments_Cascade(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author@example.com", "Author")
	reader := seedUser(t, userRepo, "reader@example.com", "Reader")

	doomed := &models.Post{Title: "Doomed", Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, doomed))
	survivor := &models.Post{Title: "Survivor", Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, survivor))

	for i := 0; i < 3; i++ {
		require.NoError(t, commentRepo.Create(ctx, &models.Comment{
			Text: "on doomed", AuthorID: reader.ID, PostID: doomed.ID,
		}))
	}
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		Text: "on survivor", AuthorID: reader.ID, PostID: survivor.ID,
	}))

	require.NoError(t, postRepo.DeleteWithComments(ctx, doomed.ID))

	// No comment referencing the deleted post's ID remains.
	remaining, err := commentRepo.CountByPost(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)

	_, err = postRepo.GetByID(ctx, doomed.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// The other post and its comments are untouched.
	kept, err := commentRepo.CountByPost(ctx, survivor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), kept)

	_, err = postRepo.GetByID(ctx, survivor.ID)
	assert.NoError(t, err)
}

func TestCommentRepository_ListByPost_PreloadsAuthor(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author@example.com", "Author")
	reader := seedUser(t, userRepo, "reader@example.com", "Reader")

	post := &models.Post{Title: "Hello", Subtitle: "s", Date: "May 1, 2026", Body: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, post))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		Text: "first!", AuthorID: reader.ID, PostID: post.ID,
	}))

	comments, err := commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "Reader", comments[0].Author.Name)
}
