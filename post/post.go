package post

import (
	"strconv"
	"time"
)

type PostID = int64

// DateLayout is the layout of Post.Date.
const DateLayout = time.DateOnly

// CommentTimeLayout is the display layout of Comment.Time.
const CommentTimeLayout = "1/2/2006, 3:04:05 PM"

type Post struct {
	ID    PostID `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	Body  string `json:"body"`
	Date  string `json:"date"`
}

type PostList []Post

// NewPost holds the user supplied fields of a post about to be created.
type NewPost struct {
	Title string
	Image string
	Body  string
}

type Comment struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	TripCode string `json:"tripcode,omitempty"`
	Text     string `json:"text"`
	Time     string `json:"time"`
}

type CommentList []Comment

func (p Post) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, p.Date, time.UTC)
}

func (p Post) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

func (pl PostList) IDs() []PostID {
	ids := make([]PostID, len(pl))
	for i, p := range pl {
		ids[i] = p.ID
	}
	return ids
}
