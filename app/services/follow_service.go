package services

import (
	"errors"
	"fmt"

	"bramble/app/models"
	"bramble/app/monitoring"
	"bramble/app/repositories"

	log "github.com/sirupsen/logrus"
)

// FollowService manages the social graph: directed follow edges between
// users. Self-follow, duplicate follow and absent unfollow are silently
// absorbed rather than reported, matching the documented no-op behavior.
type FollowService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow creates the edge viewer->target. Returns
// repositories.ErrNotFound when the target username does not exist.
// Self-follow and an already existing edge are no-ops.
func (s *FollowService) Follow(viewerID int, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		return err
	}

	if viewerID == target.ID {
		log.Debugf("ignoring self-follow by user %d", viewerID)
		return nil
	}

	follow := &models.Follow{FollowerID: viewerID, FollowedID: target.ID}
	follow.BeforeCreate()
	if err := follow.Validate(); err != nil {
		return fmt.Errorf("invalid follow: %v", err)
	}

	err = s.followRepo.Create(follow)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}
	monitoring.FollowMutations.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge viewer->target if present. Returns
// repositories.ErrNotFound only when the target username does not exist;
// a missing edge is a no-op.
func (s *FollowService) Unfollow(viewerID int, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		return err
	}

	err = s.followRepo.Delete(viewerID, target.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	monitoring.FollowMutations.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether viewer follows target. Always false for an
// unauthenticated viewer and for viewer == target.
func (s *FollowService) IsFollowing(viewerID, targetID int) (bool, error) {
	if viewerID <= 0 || viewerID == targetID {
		return false, nil
	}
	return s.followRepo.Exists(viewerID, targetID)
}
