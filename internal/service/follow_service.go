package service

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/model"
	"microblog/internal/pkg"
	"microblog/internal/repository/mysql"
)

type FollowService struct {
	users   *mysql.UserRepository
	follows *mysql.FollowRepository
	events  EventSender
}

func NewFollowService(db *gorm.DB, events EventSender) *FollowService {
	return &FollowService{
		users:   &mysql.UserRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
		events:  events,
	}
}

// Follow creates the edge towards the named author. Following yourself or
// an author you already follow is a no-op, not an error. Returns the author
// and whether a new edge was created.
func (s *FollowService) Follow(ctx context.Context, userID uint64, username string) (*model.User, bool, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, false, notFound(err)
	}
	if author.ID == userID {
		return author, false, nil
	}
	changed, err := s.follows.Follow(ctx, userID, author.ID)
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.publish(ctx, "follow", userID, author.ID)
	}
	return author, changed, nil
}

// Unfollow is delete-if-exists; unfollowing a non-followed author is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint64, username string) (*model.User, bool, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, false, notFound(err)
	}
	changed, err := s.follows.Unfollow(ctx, userID, author.ID)
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.publish(ctx, "unfollow", userID, author.ID)
	}
	return author, changed, nil
}

func (s *FollowService) publish(ctx context.Context, kind string, userID, authorID uint64) {
	if s.events == nil {
		return
	}
	_ = s.events(ctx, pkg.MakeKeyFromID(userID), eventPayload(kind, map[string]any{
		"follower": userID,
		"followee": authorID,
	}))
}
