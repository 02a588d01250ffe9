package main

import (
	"github.com/aquilax/blogboard/database"
	"github.com/aquilax/blogboard/store"
	"go.uber.org/zap"
)

type Model struct {
	posts     *store.PostStore
	comments  *store.CommentLog
	bookmarks *store.BookmarkSet
}

// NewModel builds the stores over db and loads the posts.
func NewModel(db database.Database, logger *zap.Logger, opts ...store.Option) (*Model, error) {
	opts = append([]store.Option{store.WithLogger(logger)}, opts...)
	m := &Model{
		posts:     store.NewPostStore(db, opts...),
		comments:  store.NewCommentLog(db, opts...),
		bookmarks: store.NewBookmarkSet(db, opts...),
	}
	if err := m.posts.Initialize(); err != nil {
		return nil, err
	}
	return m, nil
}
