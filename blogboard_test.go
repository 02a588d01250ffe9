package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aquilax/blogboard/database/memory"
	"github.com/aquilax/blogboard/post"
	"github.com/aquilax/blogboard/store"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.January, 19, 12, 0, 0, 0, time.UTC)

func newTestBlogBoard(t *testing.T) *BlogBoard {
	t.Helper()
	clock := func() time.Time { return testNow }
	m, err := NewModel(memory.New(), zap.NewNop(), store.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	b := NewBlogBoard(getTestConfig(), m, zap.NewNop())
	b.now = clock
	return b
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestNewBlogBoard(t *testing.T) {
	Convey("Given new BlogBoard", t, func() {
		b := newTestBlogBoard(t)
		h := b.Handler()

		Convey("BlogBoard is not nil", func() {
			So(b, ShouldNotBeNil)
		})

		Convey("the home page shows the featured post and the latest list", func() {
			w := do(h, "GET", "/", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := w.Body.String()
			So(body, ShouldContainSubstring, `class="featured-title">A Beginner’s Guide to Web Development in 2025`)
			So(body, ShouldContainSubstring, "1 day ago • 1 min read")
			So(strings.Index(body, "/post/2/"), ShouldBeLessThan, strings.Index(body, "/post/1/"))
		})

		Convey("a post page renders title, age and comments", func() {
			w := do(h, "GET", "/post/1/how-machine-learning-is-transforming-the-world.html", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "How Machine Learning Is Transforming the World")
			So(w.Body.String(), ShouldContainSubstring, "7 days ago")
			So(w.Body.String(), ShouldContainSubstring, "https://twitter.com/share?url=http%3A%2F%2Fwww.example.com%2Fpost%2F1%2F")
		})

		Convey("an unknown post renders the not found page", func() {
			w := do(h, "GET", "/post/77/missing.html", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "There is nothing at this address.")
		})

		Convey("an unknown route renders the not found page", func() {
			w := do(h, "GET", "/nope", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("search filters posts", func() {
			w := do(h, "GET", "/search?q=VERCEL", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "/post/2/")
			So(w.Body.String(), ShouldNotContainSubstring, "/post/1/")
		})
	})
}

func TestCreatePost(t *testing.T) {
	Convey("Given the new post form", t, func() {
		b := newTestBlogBoard(t)
		h := b.Handler()

		Convey("a valid post is stored and shown first", func() {
			w := do(h, "POST", "/new.html", url.Values{"title": {"Fresh"}, "body": {"Hello there"}, "image": {""}})
			So(w.Code, ShouldEqual, http.StatusFound)
			So(w.Header().Get("Location"), ShouldEqual, "/")
			So(b.m.posts.Len(), ShouldEqual, 3)
			featured, _ := b.m.posts.Featured()
			So(featured.Title, ShouldEqual, "Fresh")
			So(featured.Date, ShouldEqual, "2025-01-19")
		})

		Convey("a missing title is reported inline", func() {
			w := do(h, "POST", "/new.html", url.Values{"title": {"  "}, "body": {"Hello"}})
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "Title is required")
			So(w.Body.String(), ShouldContainSubstring, "Hello")
			So(b.m.posts.Len(), ShouldEqual, 2)
		})

		Convey("the honeypot drops the post silently", func() {
			w := do(h, "POST", "/new.html", url.Values{"name": {"bot"}, "title": {"Spam"}, "body": {"Spam"}})
			So(w.Code, ShouldEqual, http.StatusOK)
			So(b.m.posts.Len(), ShouldEqual, 2)
		})

		Convey("the spam guard blocks quick reposts", func() {
			b.sg = NewSpamGuard(time.Hour)
			h := b.Handler()
			form := url.Values{"title": {"One"}, "body": {"Body"}}
			So(do(h, "POST", "/new.html", form).Code, ShouldEqual, http.StatusFound)
			w := do(h, "POST", "/new.html", form)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "Please wait before posting again")
		})
	})
}

var commentAnchor = regexp.MustCompile(`#C[0-9a-f-]{36}$`)

func TestComments(t *testing.T) {
	Convey("Given a post page", t, func() {
		b := newTestBlogBoard(t)
		h := b.Handler()

		Convey("posting a comment redirects to it", func() {
			w := do(h, "POST", "/post/1/comment", url.Values{"author": {"Ann#pw"}, "text": {"<b>Great</b>"}})
			So(w.Code, ShouldEqual, http.StatusFound)
			So(w.Header().Get("Location"), ShouldStartWith, "/post/1/how-machine-learning-is-transforming-the-world.html#C")
			So(commentAnchor.MatchString(w.Header().Get("Location")), ShouldBeTrue)

			page := do(h, "GET", "/post/1/x.html", nil).Body.String()
			So(page, ShouldContainSubstring, "<strong>Ann</strong>")
			So(page, ShouldContainSubstring, "&lt;b&gt;Great&lt;/b&gt;")
			So(page, ShouldContainSubstring, "1/19/2025, 12:00:00 PM")

			Convey("and deleting it removes it", func() {
				w := do(h, "POST", "/post/1/comment/0/delete", url.Values{})
				So(w.Code, ShouldEqual, http.StatusFound)
				comments, _ := b.m.comments.ListFor(1)
				So(comments, ShouldBeEmpty)
			})
		})

		Convey("an empty name keeps the log unchanged", func() {
			w := do(h, "POST", "/post/1/comment", url.Values{"author": {""}, "text": {"hello"}})
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "Name is required")
			n, _ := b.m.comments.Count(1)
			So(n, ShouldEqual, 0)
		})

		Convey("deleting an index out of range is a no-op", func() {
			_, _ = b.m.comments.Append(1, "Ann", "keep me")
			w := do(h, "POST", "/post/1/comment/5/delete", url.Values{})
			So(w.Code, ShouldEqual, http.StatusFound)
			n, _ := b.m.comments.Count(1)
			So(n, ShouldEqual, 1)
		})

		Convey("commenting on a missing post is not found", func() {
			w := do(h, "POST", "/post/404/comment", url.Values{"author": {"Ann"}, "text": {"hi"}})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestBookmarks(t *testing.T) {
	Convey("Given the bookmarks page", t, func() {
		b := newTestBlogBoard(t)
		h := b.Handler()

		Convey("it starts empty", func() {
			So(do(h, "GET", "/bookmarks.html", nil).Body.String(), ShouldContainSubstring, "No bookmarks yet.")
		})

		Convey("toggling a bookmark lists the post", func() {
			w := do(h, "POST", "/post/2/bookmark", url.Values{})
			So(w.Code, ShouldEqual, http.StatusFound)
			So(do(h, "GET", "/bookmarks.html", nil).Body.String(), ShouldContainSubstring, "/post/2/")
			So(do(h, "GET", "/post/2/x.html", nil).Body.String(), ShouldContainSubstring, `class="active"`)

			Convey("toggling again removes it", func() {
				do(h, "POST", "/post/2/bookmark", url.Values{})
				So(do(h, "GET", "/bookmarks.html", nil).Body.String(), ShouldContainSubstring, "No bookmarks yet.")
			})
		})
	})
}

func TestAuthorPageKeepsStorageOrder(t *testing.T) {
	b := newTestBlogBoard(t)
	body := do(b.Handler(), "GET", "/author.html", nil).Body.String()
	first, second := strings.Index(body, "/post/1/"), strings.Index(body, "/post/2/")
	if first < 0 || second < 0 || first > second {
		t.Errorf("author page order wrong: post 1 at %d, post 2 at %d", first, second)
	}
}

func TestIndexPagination(t *testing.T) {
	b := newTestBlogBoard(t)
	b.config.ItemsPerPage = 1
	h := b.Handler()
	for _, title := range []string{"Third", "Fourth"} {
		if _, err := b.m.posts.Create(post.NewPost{Title: title, Body: "body"}); err != nil {
			t.Fatal(err)
		}
	}
	body := do(h, "GET", "/?page=2", nil).Body.String()
	if !strings.Contains(body, ">Third<") {
		t.Errorf("page 2 does not show the second newest post")
	}
	if strings.Contains(body, `id="featured"`) {
		t.Errorf("featured post shown past the first page")
	}
	if !strings.Contains(body, `href="/?page=1"`) {
		t.Errorf("pagination links missing")
	}
}

func TestFeedAndSitemap(t *testing.T) {
	b := newTestBlogBoard(t)
	h := b.Handler()

	w := do(h, "GET", "/feed.xml", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/rss+xml" {
		t.Fatalf("feed.xml = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "http://www.example.com/post/2/") {
		t.Errorf("feed does not link the posts: %s", w.Body.String())
	}

	w = do(h, "GET", "/sitemap.xml", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sitemap.xml = %d", w.Code)
	}
	if strings.Count(w.Body.String(), "<loc>") != 2 {
		t.Errorf("sitemap should list both posts: %s", w.Body.String())
	}
}
