// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks if a password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// PostForm holds the fields of the new-post and edit-post forms.
type PostForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	Body     string `form:"body"`
	ImageURL string `form:"img_url"`
}

// ValidatePostForm returns one message per invalid field, keyed by field name.
// An empty map means the form is valid.
func ValidatePostForm(f PostForm) map[string]string {
	problems := make(map[string]string)

	if strings.TrimSpace(f.Title) == "" {
		problems["title"] = "Title is required"
	} else if len(f.Title) > 250 {
		problems["title"] = "Title must not exceed 250 characters"
	}
	if strings.TrimSpace(f.Subtitle) == "" {
		problems["subtitle"] = "Subtitle is required"
	} else if len(f.Subtitle) > 250 {
		problems["subtitle"] = "Subtitle must not exceed 250 characters"
	}
	if strings.TrimSpace(f.Body) == "" {
		problems["body"] = "Body is required"
	}
	if f.ImageURL != "" {
		if _, err := url.ParseRequestURI(f.ImageURL); err != nil {
			problems["img_url"] = "Image URL must be a valid URL"
		}
	}

	return problems
}
