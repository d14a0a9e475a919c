package service

import (
	"context"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	listFn               func(context.Context) ([]*models.Post, error)
	updateFn             func(context.Context, *models.Post) error
	deleteWithCommentsFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) DeleteWithComments(ctx context.Context, id uint) error {
	return s.deleteWithCommentsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:             func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:            func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:               func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Post) error { return nil },
		deleteWithCommentsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("anonymous requester is rejected", func(t *testing.T) {
		created := false
		repo := noopPostRepo()
		repo.createFn = func(_ context.Context, _ *models.Post) error {
			created = true
			return nil
		}
		svc := NewPostService(repo)

		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			Requester: auth.Anonymous,
			Title:     "T",
			Subtitle:  "S",
			Body:      "B",
		})
		assertAppErrorCode(t, err, "UNAUTHENTICATED")
		assert.False(t, created, "no post row may be written for anonymous requesters")
	})

	t.Run("stamps author and display date", func(t *testing.T) {
		var created *models.Post
		repo := noopPostRepo()
		repo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 9
			created = p
			return nil
		}
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return created, nil
		}
		svc := NewPostService(repo)

		post, err := svc.CreatePost(context.Background(), CreatePostInput{
			Requester: auth.UserIdentity{ID: 5},
			Title:     "First Light",
			Subtitle:  "A beginning",
			Body:      "Body text",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(5), post.AuthorID)
		assert.NotEmpty(t, post.Date)
	})
}

func TestPostService_UpdatePost_Authorization(t *testing.T) {
	t.Parallel()

	target := &models.Post{ID: 10, AuthorID: 5, Title: "Old"}

	newSvc := func(updated *bool) *PostService {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			copied := *target
			return &copied, nil
		}
		repo.updateFn = func(_ context.Context, _ *models.Post) error {
			*updated = true
			return nil
		}
		return NewPostService(repo)
	}

	t.Run("author may edit", func(t *testing.T) {
		updated := false
		_, err := newSvc(&updated).UpdatePost(context.Background(), UpdatePostInput{
			Requester: auth.UserIdentity{ID: 5}, PostID: 10, Title: "New", Subtitle: "s", Body: "b",
		})
		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("admin may edit", func(t *testing.T) {
		updated := false
		_, err := newSvc(&updated).UpdatePost(context.Background(), UpdatePostInput{
			Requester: auth.UserIdentity{ID: 1}, PostID: 10, Title: "New", Subtitle: "s", Body: "b",
		})
		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("other user is refused without a write", func(t *testing.T) {
		updated := false
		_, err := newSvc(&updated).UpdatePost(context.Background(), UpdatePostInput{
			Requester: auth.UserIdentity{ID: 7}, PostID: 10, Title: "New", Subtitle: "s", Body: "b",
		})
		assertAppErrorCode(t, err, "FORBIDDEN")
		assert.False(t, updated)
	})
}

func TestPostService_DeletePost_Authorization(t *testing.T) {
	t.Parallel()

	// Post X belongs to user 5; user 7 must be refused, the author and the
	// administrator must succeed.
	target := &models.Post{ID: 10, AuthorID: 5}

	newSvc := func(deleted *bool) *PostService {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			copied := *target
			return &copied, nil
		}
		repo.deleteWithCommentsFn = func(_ context.Context, _ uint) error {
			*deleted = true
			return nil
		}
		return NewPostService(repo)
	}

	tests := []struct {
		name      string
		requester auth.Identity
		wantErr   string
	}{
		{name: "author deletes", requester: auth.UserIdentity{ID: 5}},
		{name: "admin deletes", requester: auth.UserIdentity{ID: 1}},
		{name: "non-author refused", requester: auth.UserIdentity{ID: 7}, wantErr: "FORBIDDEN"},
		{name: "anonymous refused", requester: auth.Anonymous, wantErr: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			err := newSvc(&deleted).DeletePost(context.Background(), tt.requester, 10)
			if tt.wantErr != "" {
				assertAppErrorCode(t, err, tt.wantErr)
				assert.False(t, deleted, "a refused delete must change nothing")
			} else {
				require.NoError(t, err)
				assert.True(t, deleted)
			}
		})
	}
}

func TestPostService_DeletePost_MissingPost(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(repo)

	err := svc.DeletePost(context.Background(), auth.UserIdentity{ID: 1}, 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}
