package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"microblog/internal/model"
	"microblog/internal/pkg"
	"microblog/internal/repository/mysql"
)

// FeedCache holds whole feed result sets, keyed per query shape so one feed
// can never serve another feed's data. Advisory only; misses hit MySQL.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]model.Post, bool)
	Set(ctx context.Context, key string, posts []model.Post)
	Clear(ctx context.Context)
}

// FeedInvalidator is the slice of FeedCache that post mutations need.
type FeedInvalidator interface {
	Clear(ctx context.Context)
}

type FeedService struct {
	posts   *mysql.PostRepository
	groups  *mysql.GroupRepository
	users   *mysql.UserRepository
	follows *mysql.FollowRepository
	cache   FeedCache
}

func NewFeedService(db *gorm.DB, cache FeedCache) *FeedService {
	return &FeedService{
		posts:   &mysql.PostRepository{DB: db},
		groups:  &mysql.GroupRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
		cache:   cache,
	}
}

// Main is the unfiltered landing feed.
func (s *FeedService) Main(ctx context.Context, page int) (pkg.Page[model.Post], error) {
	posts, err := s.cached(ctx, "main", func() ([]model.Post, error) {
		return s.posts.ListAll(ctx)
	})
	if err != nil {
		return pkg.Page[model.Post]{}, err
	}
	return pkg.Paginate(posts, page), nil
}

func (s *FeedService) Group(ctx context.Context, slug string, page int) (*model.Group, pkg.Page[model.Post], error) {
	group, err := s.groups.FindBySlug(slug)
	if err != nil {
		return nil, pkg.Page[model.Post]{}, notFound(err)
	}
	posts, err := s.cached(ctx, "group:"+slug, func() ([]model.Post, error) {
		return s.posts.ListByGroup(ctx, group.ID)
	})
	if err != nil {
		return nil, pkg.Page[model.Post]{}, err
	}
	return group, pkg.Paginate(posts, page), nil
}

// Profile returns the author's feed plus whether the viewer follows them.
// A zero viewerID means anonymous and always reads as not following.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID uint64, page int) (*model.User, pkg.Page[model.Post], bool, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, pkg.Page[model.Post]{}, false, notFound(err)
	}
	posts, err := s.cached(ctx, "profile:"+username, func() ([]model.Post, error) {
		return s.posts.ListByAuthor(ctx, author.ID)
	})
	if err != nil {
		return nil, pkg.Page[model.Post]{}, false, err
	}
	following := false
	if viewerID != 0 {
		following, err = s.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, pkg.Page[model.Post]{}, false, err
		}
	}
	return author, pkg.Paginate(posts, page), following, nil
}

// Followers reports how many users follow the given author.
func (s *FeedService) Followers(ctx context.Context, authorID uint64) (int64, error) {
	return s.follows.CountFollowers(ctx, authorID)
}

// Following is the personalized feed: posts by every author the user follows.
func (s *FeedService) Following(ctx context.Context, userID uint64, page int) (pkg.Page[model.Post], error) {
	posts, err := s.cached(ctx, fmt.Sprintf("follow:%d", userID), func() ([]model.Post, error) {
		return s.posts.ListByFollowed(ctx, userID)
	})
	if err != nil {
		return pkg.Page[model.Post]{}, err
	}
	return pkg.Paginate(posts, page), nil
}

func (s *FeedService) cached(ctx context.Context, key string, load func() ([]model.Post, error)) ([]model.Post, error) {
	if s.cache == nil {
		return load()
	}
	if posts, ok := s.cache.Get(ctx, key); ok {
		pkg.FeedCacheHits.Inc()
		return posts, nil
	}
	pkg.FeedCacheMisses.Inc()
	posts, err := load()
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, posts)
	return posts, nil
}
