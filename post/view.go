package post

import "time"

// Card is the display form of a post in lists.
type Card struct {
	Post
	URL         string
	Excerpt     string
	Age         string
	ReadingTime string
}

func NewCard(p Post, url string, excerpt int, now time.Time) Card {
	return Card{
		Post:        p,
		URL:         url,
		Excerpt:     Excerpt(p.Body, excerpt),
		Age:         RelativeAge(p.Date, now),
		ReadingTime: ReadingTime(p.Body),
	}
}
