package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"microblog/internal/model"
)

func TestFollowSelfIsNoOp(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "narcissus")
	svc := NewFollowService(db, nil)

	author, changed, err := svc.Follow(context.Background(), user.ID, "narcissus")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, user.ID, author.ID)

	var edges int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&edges).Error)
	require.Zero(t, edges)
}

func TestFollowTwiceCreatesOneEdge(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	follower := seedUser(t, db, "reader")
	seedUser(t, db, "writer")
	svc := NewFollowService(db, LogSender)

	_, changed, err := svc.Follow(ctx, follower.ID, "writer")
	require.NoError(t, err)
	require.True(t, changed)

	_, changed, err = svc.Follow(ctx, follower.ID, "writer")
	require.NoError(t, err)
	require.False(t, changed)

	var edges int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&edges).Error)
	require.EqualValues(t, 1, edges)
}

func TestUnfollowNonFollowedIsNoOp(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	follower := seedUser(t, db, "reader")
	seedUser(t, db, "writer")
	svc := NewFollowService(db, nil)

	_, changed, err := svc.Unfollow(ctx, follower.ID, "writer")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestFollowUnknownUser(t *testing.T) {
	db := testDB(t)
	follower := seedUser(t, db, "reader")
	svc := NewFollowService(db, nil)

	_, _, err := svc.Follow(context.Background(), follower.ID, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
