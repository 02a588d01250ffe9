package main

import (
	"sync"
	"time"
)

// SpamGuard allows one post per id within the block duration.
type SpamGuard struct {
	duration time.Duration
	posts    map[string]time.Time
	mutex    sync.Mutex
	now      func() time.Time
}

func NewSpamGuard(duration time.Duration) *SpamGuard {
	return &SpamGuard{
		duration: duration,
		posts:    make(map[string]time.Time),
		now:      time.Now,
	}
}

func (sg *SpamGuard) CanPost(id string) bool {
	if sg.duration <= 0 {
		return true
	}
	now := sg.now()
	sg.mutex.Lock()
	defer sg.mutex.Unlock()
	sg.clean(now)
	if expires, found := sg.posts[id]; found && expires.After(now) {
		return false
	}
	sg.posts[id] = now.Add(sg.duration)
	return true
}

func (sg *SpamGuard) clean(now time.Time) {
	for key, expires := range sg.posts {
		if !expires.After(now) {
			delete(sg.posts, key)
		}
	}
}
