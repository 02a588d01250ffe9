package store

import (
	"errors"
	"slices"
	"strings"

	"github.com/aquilax/blogboard/database"
	"github.com/aquilax/blogboard/post"
	"github.com/aquilax/tripcode"
	"go.uber.org/zap"
)

// CommentLog keeps one ordered comment list per post under comments_<id>.
type CommentLog struct {
	db    database.Database
	opts  options
	locks *keyLocks
}

func NewCommentLog(db database.Database, opts ...Option) *CommentLog {
	return &CommentLog{
		db:    db,
		opts:  newOptions(opts),
		locks: newKeyLocks(),
	}
}

func (c *CommentLog) read(key string) (post.CommentList, error) {
	comments := post.CommentList{}
	_, err := load(c.db, key, commentsSchema, &comments)
	var corrupt *StorageCorruptError
	if errors.As(err, &corrupt) {
		c.opts.logger.Warn("ignoring corrupt comments", zap.String("key", key), zap.Error(corrupt.Err))
		return post.CommentList{}, nil
	}
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = post.CommentList{}
	}
	return comments, nil
}

// splitName separates "name#secret" into the display name and its tripcode.
// Without both a name and a secret the trimmed input is the name.
func splitName(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	name, secret, found := strings.Cut(raw, "#")
	name = strings.TrimSpace(name)
	if !found || name == "" || secret == "" {
		return raw, ""
	}
	return name, tripcode.Tripcode(secret)
}

// Append adds a comment to the end of the post's list and returns the list.
func (c *CommentLog) Append(postID post.PostID, name, text string) (post.CommentList, error) {
	name, trip := splitName(name)
	text = strings.TrimSpace(text)
	if name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if text == "" {
		return nil, &ValidationError{Field: "text"}
	}

	key := CommentsKey(postID)
	unlock := c.locks.lock(key)
	defer unlock()

	comments, err := c.read(key)
	if err != nil {
		return nil, err
	}
	comments = append(comments, post.Comment{
		ID:       c.opts.newID(),
		Name:     name,
		TripCode: trip,
		Text:     text,
		Time:     c.opts.now().Format(post.CommentTimeLayout),
	})
	if err := save(c.db, key, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListFor returns the comments of a post oldest first.
func (c *CommentLog) ListFor(postID post.PostID) (post.CommentList, error) {
	return c.read(CommentsKey(postID))
}

func (c *CommentLog) Count(postID post.PostID) (int, error) {
	comments, err := c.ListFor(postID)
	return len(comments), err
}

// DeleteAt removes the comment at index. Indexes outside the list are ignored.
func (c *CommentLog) DeleteAt(postID post.PostID, index int) (post.CommentList, error) {
	key := CommentsKey(postID)
	unlock := c.locks.lock(key)
	defer unlock()

	comments, err := c.read(key)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(comments) {
		return comments, nil
	}
	comments = slices.Delete(comments, index, index+1)
	if err := save(c.db, key, comments); err != nil {
		return nil, err
	}
	return comments, nil
}
