package store

import (
	"errors"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/aquilax/blogboard/database"
	"github.com/aquilax/blogboard/post"
	"go.uber.org/zap"
)

// PostStore holds every post in insertion order and writes the whole
// collection back to the database after each change.
type PostStore struct {
	db    database.Database
	opts  options
	mu    sync.RWMutex
	posts post.PostList
}

func NewPostStore(db database.Database, opts ...Option) *PostStore {
	return &PostStore{
		db:   db,
		opts: newOptions(opts),
	}
}

// Initialize loads the posts from the database, installing the seed posts
// when none can be read.
func (s *PostStore) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts post.PostList
	found, err := load(s.db, postsKey, postsSchema, &posts)
	var corrupt *StorageCorruptError
	switch {
	case errors.As(err, &corrupt):
		s.opts.logger.Warn("reseeding posts", zap.String("key", corrupt.Key), zap.Error(corrupt.Err))
	case err != nil:
		return err
	case found && len(posts) > 0:
		s.posts = posts
		return nil
	}
	seeds := seedPosts()
	if err := save(s.db, postsKey, seeds); err != nil {
		return err
	}
	s.posts = seeds
	return nil
}

func (s *PostStore) snapshot() post.PostList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// List yields the posts newest first.
func (s *PostStore) List() iter.Seq[post.Post] {
	return func(yield func(post.Post) bool) {
		posts := s.snapshot()
		for i := len(posts) - 1; i >= 0; i-- {
			if !yield(posts[i]) {
				return
			}
		}
	}
}

// All returns the posts in insertion order.
func (s *PostStore) All() post.PostList {
	posts := s.snapshot()
	result := make(post.PostList, len(posts))
	copy(result, posts)
	return result
}

func (s *PostStore) Len() int {
	return len(s.snapshot())
}

func (s *PostStore) FindByID(id post.PostID) (post.Post, error) {
	for _, p := range s.snapshot() {
		if p.ID == id {
			return p, nil
		}
	}
	return post.Post{}, ErrNotFound
}

// Search matches query against title and body ignoring case. The empty
// query matches every post. Results keep insertion order.
func (s *PostStore) Search(query string) post.PostList {
	q := strings.ToLower(query)
	result := post.PostList{}
	for _, p := range s.snapshot() {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Body), q) {
			result = append(result, p)
		}
	}
	return result
}

// Featured returns the most recently inserted post.
func (s *PostStore) Featured() (post.Post, error) {
	posts := s.snapshot()
	if len(posts) == 0 {
		return post.Post{}, ErrNotFound
	}
	return posts[len(posts)-1], nil
}

func (s *PostStore) Create(in post.NewPost) (post.Post, error) {
	p := post.Post{
		Title: strings.TrimSpace(in.Title),
		Image: strings.TrimSpace(in.Image),
		Body:  strings.TrimSpace(in.Body),
	}
	if p.Title == "" {
		return post.Post{}, &ValidationError{Field: "title"}
	}
	if p.Body == "" {
		return post.Post{}, &ValidationError{Field: "body"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	p.ID = s.nextID(now)
	p.Date = now.UTC().Format(post.DateLayout)

	posts := make(post.PostList, len(s.posts), len(s.posts)+1)
	copy(posts, s.posts)
	posts = append(posts, p)
	if err := save(s.db, postsKey, posts); err != nil {
		return post.Post{}, err
	}
	s.posts = posts
	s.opts.logger.Info("post created", zap.Int64("id", p.ID), zap.String("title", p.Title))
	return p, nil
}

// nextID is the creation time in milliseconds unless an existing id is
// already at or past it.
func (s *PostStore) nextID(now time.Time) post.PostID {
	id := now.UnixMilli()
	for _, p := range s.posts {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}
