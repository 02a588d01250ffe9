package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type Session struct {
	td TemplateData
	ln *Language
	sc *SiteConfig
}

type TemplateData map[string]interface{}

type Crumb struct {
	URL   string
	Title string
}

func NewSession(sc *SiteConfig, ln *Language) *Session {
	return &Session{
		td: NewTemplateData(sc),
		ln: ln,
		sc: sc,
	}
}

func NewTemplateData(sc *SiteConfig) TemplateData {
	td := make(TemplateData)
	td.Set("Title", sc.Title)
	td.Set("Description", sc.Description)
	td.Set("Css", sc.Css)
	td.Set("Subtitle", "")
	td.Set("Query", "")
	td.Set("Path", []Crumb{})
	return td
}

func (s *Session) getHelpers() template.FuncMap {
	return template.FuncMap{
		"lang":     s.Lang,
		"gravatar": hfGravatar,
	}
}

func (s *Session) Lang(text string) string {
	return s.ln.Lang(text)
}

func (s *Session) AddPath(url, title string) {
	path := s.td["Path"].([]Crumb)
	s.td.Set("Path", append(path, Crumb{url, title}))
}

// render executes the page template inside layout.html. Output is buffered so
// a template error still produces a clean error response.
func (s *Session) render(w http.ResponseWriter, status int, page string) error {
	t, err := template.New("layout.html").Funcs(s.getHelpers()).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, s.td); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func (td TemplateData) Set(name string, value interface{}) {
	td[name] = value
}

func (s *Session) Set(name string, value interface{}) {
	s.td.Set(name, value)
}
