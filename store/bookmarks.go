package store

import (
	"errors"
	"slices"

	"github.com/aquilax/blogboard/database"
	"github.com/aquilax/blogboard/post"
	"go.uber.org/zap"
)

// PostFinder resolves a post id.
type PostFinder interface {
	FindByID(id post.PostID) (post.Post, error)
}

// BookmarkSet is the global list of saved post ids.
type BookmarkSet struct {
	db    database.Database
	opts  options
	locks *keyLocks
}

func NewBookmarkSet(db database.Database, opts ...Option) *BookmarkSet {
	return &BookmarkSet{
		db:    db,
		opts:  newOptions(opts),
		locks: newKeyLocks(),
	}
}

func (b *BookmarkSet) read() ([]post.PostID, error) {
	ids := []post.PostID{}
	_, err := load(b.db, bookmarksKey, bookmarksSchema, &ids)
	var corrupt *StorageCorruptError
	if errors.As(err, &corrupt) {
		b.opts.logger.Warn("ignoring corrupt bookmarks", zap.Error(corrupt.Err))
		return []post.PostID{}, nil
	}
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []post.PostID{}
	}
	return ids, nil
}

// Toggle flips the membership of postID and reports whether it is now bookmarked.
func (b *BookmarkSet) Toggle(postID post.PostID) (bool, error) {
	unlock := b.locks.lock(bookmarksKey)
	defer unlock()

	ids, err := b.read()
	if err != nil {
		return false, err
	}
	bookmarked := !slices.Contains(ids, postID)
	if bookmarked {
		ids = append(ids, postID)
	} else {
		ids = slices.DeleteFunc(ids, func(id post.PostID) bool {
			return id == postID
		})
	}
	if err := save(b.db, bookmarksKey, ids); err != nil {
		return false, err
	}
	return bookmarked, nil
}

func (b *BookmarkSet) Contains(postID post.PostID) (bool, error) {
	ids, err := b.read()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, postID), nil
}

// IDs returns the bookmarked ids in the order they were added.
func (b *BookmarkSet) IDs() ([]post.PostID, error) {
	return b.read()
}

// ListPosts resolves the bookmarks through finder, skipping ids that no
// longer resolve.
func (b *BookmarkSet) ListPosts(finder PostFinder) (post.PostList, error) {
	ids, err := b.read()
	if err != nil {
		return nil, err
	}
	posts := post.PostList{}
	for _, id := range ids {
		p, err := finder.FindByID(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
