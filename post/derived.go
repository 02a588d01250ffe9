package post

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const wordsPerMinute = 200

// ReadingMinutes estimates how long body takes to read, never less than a minute.
func ReadingMinutes(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func ReadingTime(body string) string {
	return strconv.Itoa(ReadingMinutes(body)) + " min read"
}

// RelativeAge counts the whole days elapsed between UTC midnight of date and now.
// Future dates read as "Today".
func RelativeAge(date string, now time.Time) string {
	posted, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return ""
	}
	days := int(math.Floor(now.Sub(posted).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	default:
		return strconv.Itoa(days) + " days ago"
	}
}

// Excerpt cuts body to n runes and marks the cut.
func Excerpt(body string, n int) string {
	if utf8.RuneCountInString(body) <= n {
		return body + "..."
	}
	return string([]rune(body)[:n]) + "..."
}
