package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"microblog/internal/model"
)

func seedPosts(t *testing.T, db *gorm.DB, authorID uint64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&model.Post{Text: "post", AuthorID: authorID}).Error)
	}
}

func TestMainFeedUsesCache(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "auth")
	seedPosts(t, db, author.ID, 3)
	cache := newMapCache()
	svc := NewFeedService(db, cache)

	page, err := svc.Main(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.Equal(t, 1, cache.sets)

	// A post written behind the cache's back stays invisible until
	// invalidation; that is the advisory-cache contract.
	seedPosts(t, db, author.ID, 1)
	page, err = svc.Main(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.Equal(t, 1, cache.sets)

	cache.Clear(ctx)
	page, err = svc.Main(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
}

func TestFeedShapesUseDistinctKeys(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "auth")
	group := &model.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(group).Error)
	require.NoError(t, db.Create(&model.Post{Text: "grouped", AuthorID: author.ID, GroupID: &group.ID}).Error)
	require.NoError(t, db.Create(&model.Post{Text: "loose", AuthorID: author.ID}).Error)

	cache := newMapCache()
	svc := NewFeedService(db, cache)

	main, err := svc.Main(ctx, 1)
	require.NoError(t, err)
	require.Len(t, main.Items, 2)

	// The group feed must not be fed from the main feed's entry.
	_, grouped, err := svc.Group(ctx, "cats", 1)
	require.NoError(t, err)
	require.Len(t, grouped.Items, 1)
	require.Equal(t, "grouped", grouped.Items[0].Text)

	require.Contains(t, cache.data, "main")
	require.Contains(t, cache.data, "group:cats")
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	db := testDB(t)
	svc := NewFeedService(db, nil)
	_, _, err := svc.Group(context.Background(), "missing", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileFollowingFlag(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "writer")
	viewer := seedUser(t, db, "reader")
	seedPosts(t, db, author.ID, 1)
	svc := NewFeedService(db, nil)

	_, _, following, err := svc.Profile(ctx, "writer", viewer.ID, 1)
	require.NoError(t, err)
	require.False(t, following)

	_, _, err2 := NewFollowService(db, nil).Follow(ctx, viewer.ID, "writer")
	require.NoError(t, err2)

	_, page, following, err := svc.Profile(ctx, "writer", viewer.ID, 1)
	require.NoError(t, err)
	require.True(t, following)
	require.Len(t, page.Items, 1)

	// Anonymous viewers never read as following.
	_, _, following, err = svc.Profile(ctx, "writer", 0, 1)
	require.NoError(t, err)
	require.False(t, following)
}

func TestFollowingFeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	reader := seedUser(t, db, "reader")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")
	seedPosts(t, db, followed.ID, 2)
	seedPosts(t, db, stranger.ID, 5)

	_, _, err := NewFollowService(db, nil).Follow(ctx, reader.ID, "followed")
	require.NoError(t, err)

	page, err := NewFeedService(db, nil).Following(ctx, reader.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, post := range page.Items {
		require.Equal(t, followed.ID, post.AuthorID)
	}
}
