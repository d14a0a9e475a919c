// Package service holds the application's use-case logic.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration and login.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries an already-validated registration form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register hashes the password and inserts the user. A duplicate email
// surfaces as a CONFLICT error with no partial row; the stored hash encodes
// its own cost and salt, so verification never hardcodes them.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login looks the account up by exact email and verifies the password
// against the stored hash. Unknown email and wrong password are distinct
// recoverable conditions.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("Account", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Password is incorrect")
	}
	return user, nil
}
