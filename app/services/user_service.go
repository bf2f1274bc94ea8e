package services

import (
	"errors"
	"fmt"

	"bramble/app/models"
	"bramble/app/repositories"
)

// UserService handles registration, authentication and account removal.
type UserService struct {
	userRepo   repositories.UserRepository
	postRepo   repositories.PostRepository
	followRepo repositories.FollowRepository
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// Register creates a new user with a hashed password. Returns
// repositories.ErrDuplicate when the username is taken.
func (s *UserService) Register(username, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %v", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. A missing user and a wrong
// password both yield ErrInvalidCredentials, so callers cannot probe for
// account existence.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes a user account. Deletion is forbidden while the user
// still owns posts; once allowed, every follow edge touching the user is
// removed as well so the graph stays consistent.
func (s *UserService) DeleteUser(id int) error {
	posts, err := s.postRepo.ListByAuthor(id)
	if err != nil {
		return err
	}
	if len(posts) > 0 {
		return ErrUserHasPosts
	}

	if err := s.followRepo.DeleteEdgesInvolving(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
