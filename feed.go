package main

import (
	"net/http"
	"time"

	"github.com/aquilax/blogboard/post"
	"github.com/gorilla/feeds"
	"github.com/sourcegraph/sitemap"
)

func baseURL(sc *SiteConfig, r *http.Request) string {
	if sc.BaseURL != "" {
		return sc.BaseURL
	}
	return "http://" + r.Host
}

func postTime(p post.Post) time.Time {
	day, err := p.Day()
	if err != nil {
		return time.Time{}
	}
	return day
}

func (b *BlogBoard) feedHandler(w http.ResponseWriter, r *http.Request) error {
	sc := &b.config.Site
	base := baseURL(sc, r)
	feed := &feeds.Feed{
		Title:       sc.Title,
		Link:        &feeds.Link{Href: base},
		Description: sc.Description,
		Author:      &feeds.Author{Name: sc.AuthorName, Email: sc.AuthorEmail},
		Created:     b.now(),
	}
	for p := range b.m.posts.List() {
		if len(feed.Items) == feedSize {
			break
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.Key(),
			Title:       p.Title,
			Link:        &feeds.Link{Href: base + postURL(p)},
			Description: string(renderText(p.Body)),
			Created:     postTime(p),
		})
	}
	w.Header().Set("Content-Type", "application/rss+xml")
	return feed.WriteRss(w)
}

func (b *BlogBoard) sitemapHandler(w http.ResponseWriter, r *http.Request) error {
	base := baseURL(&b.config.Site, r)
	var urlSet sitemap.URLSet
	for _, p := range b.m.posts.All() {
		lastMod := postTime(p)
		urlSet.URLs = append(urlSet.URLs, sitemap.URL{
			Loc:        base + postURL(p),
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Daily,
			Priority:   0.7,
		})
	}
	xml, err := sitemap.Marshal(&urlSet)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/xml")
	_, err = w.Write(xml)
	return err
}
