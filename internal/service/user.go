package service

import (
	"context"
	"strings"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// UserService handles user profile operations
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile retrieves the current user's profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.ToInfo(), nil
}

// UpdateNickname changes the user's nickname and returns the updated profile
func (s *UserService) UpdateNickname(ctx context.Context, userID string, req model.UpdateNicknameRequest) (*model.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	nickname := strings.TrimSpace(req.Nickname)
	if err := s.userRepo.UpdateNickname(ctx, userID, nickname); err != nil {
		return nil, err
	}

	user.Nickname = nickname
	return user.ToInfo(), nil
}
