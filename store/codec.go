package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aquilax/blogboard/database"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	postsKey     = "blog_posts"
	bookmarksKey = "bookmarks"
	commentsKey  = "comments_"
)

func CommentsKey(postID int64) string {
	return fmt.Sprintf("%s%d", commentsKey, postID)
}

var postsSchema = jsonschema.MustCompileString("posts.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "body", "date"],
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "string", "minLength": 1},
			"image": {"type": "string"},
			"body": {"type": "string", "minLength": 1},
			"date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}
		}
	}
}`)

var bookmarksSchema = jsonschema.MustCompileString("bookmarks.json", `{
	"type": "array",
	"items": {"type": "integer"}
}`)

var commentsSchema = jsonschema.MustCompileString("comments.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "text", "time"],
		"properties": {
			"id": {"type": "string"},
			"name": {"type": "string"},
			"tripcode": {"type": "string"},
			"text": {"type": "string"},
			"time": {"type": "string"}
		}
	}
}`)

// load reads key into v. It reports found=false for a missing key and a
// *StorageCorruptError when the value is not valid against schema.
func load(db database.Database, key string, schema *jsonschema.Schema, v any) (found bool, err error) {
	raw, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return true, &StorageCorruptError{Key: key, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return true, &StorageCorruptError{Key: key, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, &StorageCorruptError{Key: key, Err: err}
	}
	return true, nil
}

func save(db database.Database, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := db.Set(key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
