package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"microblog/internal/model"
	"microblog/internal/repository/mysql"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// mapCache is an in-process FeedCache used to observe hit and invalidation
// behavior without redis.
type mapCache struct {
	mu    sync.Mutex
	data  map[string][]model.Post
	sets  int
	clear int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]model.Post{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]model.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts, ok := c.data[key]
	return posts, ok
}

func (c *mapCache) Set(ctx context.Context, key string, posts []model.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = posts
	c.sets++
}

func (c *mapCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]model.Post{}
	c.clear++
}
