package main

import (
	"crypto/md5"
	"encoding/hex"
	"html/template"
	"strconv"

	"github.com/aquilax/blogboard/post"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var ugcPolicy = bluemonday.UGCPolicy()

func hfSlug(s string) string {
	return slug.Make(s) + ".html"
}

func postURL(p post.Post) string {
	return "/post/" + p.Key() + "/" + hfSlug(p.Title)
}

func parsePostID(s string) (post.PostID, error) {
	return strconv.ParseInt(s, 10, 64)
}

func inHoneypot(t string) bool {
	return len(t) > 0
}

func renderText(t string) template.HTML {
	extensions := blackfriday.NoIntraEmphasis |
		blackfriday.Tables |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough |
		blackfriday.SpaceHeadings |
		blackfriday.HeadingIDs |
		blackfriday.HardLineBreak

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML |
			blackfriday.Smartypants |
			blackfriday.SmartypantsFractions |
			blackfriday.SmartypantsLatexDashes,
	})
	unsafe := blackfriday.Run([]byte(t), blackfriday.WithExtensions(extensions), blackfriday.WithRenderer(renderer))
	return template.HTML(ugcPolicy.SanitizeBytes(unsafe))
}

func hfGravatar(tripcode string) string {
	if tripcode == "" {
		return "http://www.gravatar.com/avatar/00000000000000000000000000000000?d=retro"
	}
	hash := md5.Sum([]byte(tripcode))
	return "http://www.gravatar.com/avatar/" + hex.EncodeToString(hash[:]) + "?d=retro"
}
