package server

import (
	"errors"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return s.handleError(c, err)
	}
	return s.render(c, "index", fiber.Map{
		"Posts": posts,
	})
}

// ShowPost handles GET /post/:id.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.handleError(c, err)
	}
	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, "post", fiber.Map{
		"Title":     post.Title,
		"Post":      post,
		"Comments":  comments,
		"CanModify": auth.CanModify(middleware.CurrentIdentity(c), post),
	})
}

// AddComment handles POST /post/:id. Anonymous visitors are redirected to
// the login form; on success the post page is re-rendered with the fresh
// comment set in the same response.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	identity := middleware.CurrentIdentity(c)
	text := c.FormValue("comment_text")

	comments, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		Requester: identity,
		PostID:    postID,
		Text:      text,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			post, getErr := s.postService.GetPost(c.Context(), postID)
			if getErr != nil {
				return s.handleError(c, getErr)
			}
			existing, listErr := s.commentService.ListComments(c.Context(), postID)
			if listErr != nil {
				return s.handleError(c, listErr)
			}
			return s.render(c, "post", fiber.Map{
				"Title":        post.Title,
				"Post":         post,
				"Comments":     existing,
				"CanModify":    auth.CanModify(identity, post),
				"CommentError": appErr.Message,
			})
		}
		return s.handleError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.handleError(c, err)
	}
	return s.render(c, "post", fiber.Map{
		"Title":     post.Title,
		"Post":      post,
		"Comments":  comments,
		"CanModify": auth.CanModify(identity, post),
	})
}

// ShowNewPost handles GET /new-post.
func (s *Server) ShowNewPost(c *fiber.Ctx) error {
	return s.render(c, "make-post", fiber.Map{
		"Title":  "New Post",
		"Action": "/new-post",
		"Form":   validation.PostForm{},
		"Errors": map[string]string{},
	})
}

// CreatePost handles POST /new-post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Invalid form submission")
	}

	if fieldErrors := validation.ValidatePostForm(form); len(fieldErrors) > 0 {
		return s.render(c, "make-post", fiber.Map{
			"Title":  "New Post",
			"Action": "/new-post",
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	_, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Requester: middleware.CurrentIdentity(c),
		Title:     form.Title,
		Subtitle:  form.Subtitle,
		Body:      form.Body,
		ImageURL:  form.ImageURL,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return s.render(c, "make-post", fiber.Map{
				"Title":  "New Post",
				"Action": "/new-post",
				"Form":   form,
				"Errors": map[string]string{"title": appErr.Message},
			})
		}
		return s.handleError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowEditPost handles GET /edit-post/:id.
func (s *Server) ShowEditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.handleError(c, err)
	}
	if !auth.CanModify(middleware.CurrentIdentity(c), post) {
		return s.renderError(c, fiber.StatusForbidden, "You are not the creator of this post")
	}

	return s.render(c, "make-post", fiber.Map{
		"Title":  "Edit Post",
		"Action": "/edit-post/" + c.Params("id"),
		"IsEdit": true,
		"Form": validation.PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Body:     post.Body,
			ImageURL: post.ImageURL,
		},
		"Errors": map[string]string{},
	})
}

// EditPost handles POST /edit-post/:id.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Invalid form submission")
	}

	if fieldErrors := validation.ValidatePostForm(form); len(fieldErrors) > 0 {
		return s.render(c, "make-post", fiber.Map{
			"Title":  "Edit Post",
			"Action": "/edit-post/" + c.Params("id"),
			"IsEdit": true,
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	_, err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		Requester: middleware.CurrentIdentity(c),
		PostID:    postID,
		Title:     form.Title,
		Subtitle:  form.Subtitle,
		Body:      form.Body,
		ImageURL:  form.ImageURL,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return s.render(c, "make-post", fiber.Map{
				"Title":  "Edit Post",
				"Action": "/edit-post/" + c.Params("id"),
				"IsEdit": true,
				"Form":   form,
				"Errors": map[string]string{"title": appErr.Message},
			})
		}
		return s.handleError(c, err)
	}

	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id. The post and its comments go in a
// single transaction; a refused request changes nothing.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), middleware.CurrentIdentity(c), postID); err != nil {
		return s.handleError(c, err)
	}

	middleware.SetFlash(c, "info", "Post deleted")
	return c.Redirect("/", fiber.StatusSeeOther)
}
