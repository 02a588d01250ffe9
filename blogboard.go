package main

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/aquilax/blogboard/post"
	"github.com/aquilax/blogboard/store"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

const (
	excerptList     = 130
	excerptFeatured = 160
	excerptAuthor   = 120
	feedSize        = 20
)

type BlogBoard struct {
	config *Config
	m      *Model
	tp     *TransPool
	sg     *SpamGuard
	logger *zap.Logger
	now    func() time.Time
}

type appHandler func(http.ResponseWriter, *http.Request) error

func NewBlogBoard(config *Config, m *Model, logger *zap.Logger) *BlogBoard {
	return &BlogBoard{
		config: config,
		m:      m,
		tp:     NewTransPool(config.Translations, logger),
		sg:     NewSpamGuard(config.PostBlockExpire),
		logger: logger,
		now:    time.Now,
	}
}

func (b *BlogBoard) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/", b.handle(b.indexHandler)).Methods("GET")
	r.Handle("/search", b.handle(b.searchHandler)).Methods("GET")
	r.Handle("/feed.xml", b.handle(b.feedHandler)).Methods("GET")
	r.Handle("/sitemap.xml", b.handle(b.sitemapHandler)).Methods("GET")
	r.Handle("/new.html", b.handle(b.newPostHandler)).Methods("GET", "POST")
	r.Handle("/bookmarks.html", b.handle(b.bookmarksHandler)).Methods("GET")
	r.Handle("/author.html", b.handle(b.authorHandler)).Methods("GET")
	r.Handle("/post/{postID:[0-9]+}/comment", b.handle(b.commentHandler)).Methods("POST")
	r.Handle("/post/{postID:[0-9]+}/comment/{index:[0-9]+}/delete", b.handle(b.deleteCommentHandler)).Methods("POST")
	r.Handle("/post/{postID:[0-9]+}/bookmark", b.handle(b.bookmarkHandler)).Methods("POST")
	r.Handle("/post/{postID:[0-9]+}/{slug}", b.handle(b.postHandler)).Methods("GET")
	r.NotFoundHandler = b.handle(func(w http.ResponseWriter, r *http.Request) error {
		return store.ErrNotFound
	})
	return gzhttp.GzipHandler(r)
}

type boundHandler struct {
	b  *BlogBoard
	fn appHandler
}

func (b *BlogBoard) handle(fn appHandler) http.Handler {
	return boundHandler{b, fn}
}

func (h boundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.fn(w, r)
	if err == nil {
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		if err := h.b.notFound(w, r); err != nil {
			h.b.logError(r, err)
			http.Error(w, "Not found", http.StatusNotFound)
		}
		return
	}
	h.b.logError(r, err)
	var httpError *HTTPError
	if errors.As(err, &httpError) {
		http.Error(w, httpError.Error(), httpError.Code)
		return
	}
	// Default to 500 Internal Server Error
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (b *BlogBoard) logError(r *http.Request, err error) {
	b.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

func (b *BlogBoard) session() *Session {
	sc := &b.config.Site
	return NewSession(sc, b.tp.Get(sc.Language))
}

func (b *BlogBoard) cards(posts []post.Post, excerpt int) []post.Card {
	now := b.now()
	cards := make([]post.Card, len(posts))
	for i, p := range posts {
		cards[i] = post.NewCard(p, postURL(p), excerpt, now)
	}
	return cards
}

func (b *BlogBoard) notFound(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	s.Set("Subtitle", s.Lang("Not found"))
	s.Set("Message", s.Lang("There is nothing at this address."))
	return s.render(w, http.StatusNotFound, "notfound.html")
}

func (b *BlogBoard) indexHandler(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	page := getPageNumber(r.URL.Query().Get("page"))
	latest := slices.Collect(b.m.posts.List())
	ipp := b.config.ItemsPerPage
	start, end := pageWindow(page, ipp, len(latest))

	if featured, err := b.m.posts.Featured(); err == nil && page == 0 {
		card := post.NewCard(featured, postURL(featured), excerptFeatured, b.now())
		s.Set("Featured", &card)
	}
	s.Set("Heading", s.Lang("Latest posts"))
	s.Set("Cards", b.cards(latest[start:end], excerptList))
	s.Set("Pagination", Pagination(PaginationConfig{
		page:  page + 1,
		ipp:   ipp,
		total: len(latest),
		url:   "/",
		param: "page",
	}))
	return s.render(w, http.StatusOK, "index.html")
}

func (b *BlogBoard) searchHandler(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	query := r.URL.Query().Get("q")
	found := b.m.posts.Search(query)
	s.AddPath("/", s.Lang("Home"))
	s.AddPath("", s.Lang("Search"))
	s.Set("Subtitle", s.Lang("Search"))
	s.Set("Query", query)
	s.Set("Heading", s.Lang("Search results"))
	s.Set("Cards", b.cards(found, excerptList))
	return s.render(w, http.StatusOK, "index.html")
}

func (b *BlogBoard) findPost(r *http.Request) (post.Post, error) {
	id, err := parsePostID(mux.Vars(r)["postID"])
	if err != nil {
		return post.Post{}, store.ErrNotFound
	}
	return b.m.posts.FindByID(id)
}

type commentForm struct {
	Author string
	Text   string
}

func (b *BlogBoard) renderPost(w http.ResponseWriter, r *http.Request, p post.Post, form commentForm, errs ValidationErrors) error {
	s := b.session()
	comments, err := b.m.comments.ListFor(p.ID)
	if err != nil {
		return err
	}
	bookmarked, err := b.m.bookmarks.Contains(p.ID)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.AddPath("/", s.Lang("Home"))
	s.AddPath("", p.Title)
	s.Set("Subtitle", p.Title)
	s.Set("Post", p)
	s.Set("ActionURL", "/post/"+p.Key())
	s.Set("Body", renderText(p.Body))
	s.Set("Age", post.RelativeAge(p.Date, b.now()))
	s.Set("ReadingTime", post.ReadingTime(p.Body))
	s.Set("Bookmarked", bookmarked)
	s.Set("Comments", comments)
	s.Set("Share", post.Share(baseURL(&b.config.Site, r)+postURL(p)))
	s.Set("Form", form)
	s.Set("Errors", errs)
	return s.render(w, status, "post.html")
}

func (b *BlogBoard) postHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := b.findPost(r)
	if err != nil {
		return err
	}
	return b.renderPost(w, r, p, commentForm{}, nil)
}

func (b *BlogBoard) validationMessage(err error, ln *Language) string {
	var ve *store.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	switch ve.Field {
	case "title":
		return ln.Lang("Title is required")
	case "body":
		return ln.Lang("Body is required")
	case "name":
		return ln.Lang("Name is required")
	case "text":
		return ln.Lang("Comment is required")
	}
	return ln.Lang("Fill all required fields")
}

func (b *BlogBoard) newPostHandler(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	var errs ValidationErrors
	var form post.NewPost
	if r.Method == http.MethodPost && !inHoneypot(r.FormValue("name")) {
		form = post.NewPost{
			Title: r.FormValue("title"),
			Image: r.FormValue("image"),
			Body:  r.FormValue("body"),
		}
		if !b.sg.CanPost(r.RemoteAddr) {
			errs = append(errs, s.Lang("Please wait before posting again"))
		} else {
			_, err := b.m.posts.Create(form)
			switch {
			case err == nil:
				http.Redirect(w, r, "/", http.StatusFound)
				return nil
			case store.IsValidation(err):
				errs = append(errs, b.validationMessage(err, s.ln))
			default:
				return err
			}
		}
	}
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.AddPath("/", s.Lang("Home"))
	s.AddPath("", s.Lang("New post"))
	s.Set("Subtitle", s.Lang("New post"))
	s.Set("Form", form)
	s.Set("Errors", errs)
	return s.render(w, status, "new.html")
}

func (b *BlogBoard) commentHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := b.findPost(r)
	if err != nil {
		return err
	}
	if inHoneypot(r.FormValue("name")) {
		http.Redirect(w, r, postURL(p), http.StatusFound)
		return nil
	}
	form := commentForm{Author: r.FormValue("author"), Text: r.FormValue("text")}
	ln := b.tp.Get(b.config.Site.Language)
	if !b.sg.CanPost(r.RemoteAddr) {
		return b.renderPost(w, r, p, form, ValidationErrors{ln.Lang("Please wait before posting again")})
	}
	comments, err := b.m.comments.Append(p.ID, form.Author, form.Text)
	if store.IsValidation(err) {
		return b.renderPost(w, r, p, form, ValidationErrors{b.validationMessage(err, ln)})
	}
	if err != nil {
		return err
	}
	http.Redirect(w, r, postURL(p)+"#C"+comments[len(comments)-1].ID, http.StatusFound)
	return nil
}

func (b *BlogBoard) deleteCommentHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := b.findPost(r)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return &HTTPError{Err: err, Message: "Bad comment index", Code: http.StatusBadRequest}
	}
	if _, err := b.m.comments.DeleteAt(p.ID, index); err != nil {
		return err
	}
	http.Redirect(w, r, postURL(p)+"#comments", http.StatusFound)
	return nil
}

func (b *BlogBoard) bookmarkHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := b.findPost(r)
	if err != nil {
		return err
	}
	bookmarked, err := b.m.bookmarks.Toggle(p.ID)
	if err != nil {
		return err
	}
	b.logger.Debug("bookmark toggled", zap.Int64("post", p.ID), zap.Bool("bookmarked", bookmarked))
	http.Redirect(w, r, postURL(p), http.StatusFound)
	return nil
}

func (b *BlogBoard) bookmarksHandler(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	posts, err := b.m.bookmarks.ListPosts(b.m.posts)
	if err != nil {
		return err
	}
	s.AddPath("/", s.Lang("Home"))
	s.AddPath("", s.Lang("Bookmarks"))
	s.Set("Subtitle", s.Lang("Bookmarks"))
	s.Set("Heading", s.Lang("Bookmarks"))
	s.Set("ListID", "bookmarkList")
	s.Set("Empty", s.Lang("No bookmarks yet."))
	s.Set("Cards", b.cards(posts, excerptList))
	return s.render(w, http.StatusOK, "list.html")
}

func (b *BlogBoard) authorHandler(w http.ResponseWriter, r *http.Request) error {
	s := b.session()
	s.AddPath("/", s.Lang("Home"))
	s.AddPath("", s.Lang("Author"))
	s.Set("Subtitle", b.config.Site.AuthorName)
	s.Set("Heading", s.Lang("All posts"))
	s.Set("ListID", "authorPosts")
	s.Set("Empty", s.Lang("No posts found."))
	s.Set("Cards", b.cards(b.m.posts.All(), excerptAuthor))
	return s.render(w, http.StatusOK, "list.html")
}
