package service

import (
	"context"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// dateLayout is the display format of a post's publication date.
const dateLayout = "January 2, 2006"

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Requester auth.Identity
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
}

type UpdatePostInput struct {
	Requester auth.Identity
	PostID    uint
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost publishes a new post owned by the requester. Any authenticated
// user may publish; the publication date is stamped server-side.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if !in.Requester.IsAuthenticated() {
		return nil, models.NewUnauthenticatedError("You have to be logged in to publish a post")
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		AuthorID: in.Requester.UserID(),
		Date:     time.Now().Format(dateLayout),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies edits if the requester passes the modification policy.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if !auth.CanModify(in.Requester, post) {
		return nil, models.NewForbiddenError("You are not the creator of this post")
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and all of its comments in one transaction if
// the requester passes the modification policy. A refused or failed request
// changes nothing.
func (s *PostService) DeletePost(ctx context.Context, requester auth.Identity, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !auth.CanModify(requester, post) {
		return models.NewForbiddenError("You are not the creator of this post")
	}

	return s.postRepo.DeleteWithComments(ctx, postID)
}
