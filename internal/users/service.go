package users

import (
	"context"
	"errors"
	"strings"

	"resume-analyzer/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureUser creates or refreshes the stored profile for an authenticated identity.
func (s *Service) EnsureUser(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.ID == "" {
		return User{}, errors.New("user id is required")
	}
	if user.Provider == "" {
		user.Provider = providerOf(user.ID)
	}

	stored, err := s.Repo.Upsert(ctx, user)
	if err != nil {
		return User{}, err
	}
	telemetry.Info("users.login", map[string]any{
		"user_id":  stored.ID,
		"provider": stored.Provider,
	})
	return stored, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// providerOf returns the identity provider prefix of a "<provider>:<subject>" id.
func providerOf(userID string) string {
	if idx := strings.Index(userID, ":"); idx > 0 {
		return userID[:idx]
	}
	return ""
}
