package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix      = "user:%d"
	postsListKeyPrefix = "posts:all"
)

const (
	UserTTL      = 5 * time.Minute
	PostsListTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// PostsListKey keys the cached first page by its limit so requests for
// different page sizes never share an entry.
func PostsListKey(limit int) string {
	return fmt.Sprintf("%s:limit=%d", postsListKeyPrefix, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePostsList drops every cached posts page regardless of limit.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, postsListKeyPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
