package service

import (
	"context"
	"errors"
	"fmt"

	"atlas3-backend/internal/features/user/models"
	"atlas3-backend/internal/features/user/repository"
)

type UserService interface {
	// GetOrCreateUser mirrors the session user into the users table,
	// updating the stored type when the session reports a different one.
	GetOrCreateUser(ctx context.Context, id string, userType models.UserType) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetOrCreateUser(ctx context.Context, id string, userType models.UserType) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err == nil {
		if userType != "" && user.Type != userType {
			user.Type = userType
			if err := s.repo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if userType == "" {
		userType = models.UserTypeUser
	}
	user = &models.User{ID: id, Type: userType}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
