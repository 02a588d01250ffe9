package post

import "net/url"

type ShareLinks struct {
	WhatsApp string
	Twitter  string
	Facebook string
	LinkedIn string
}

// Share builds the social share links for an absolute post URL.
func Share(postURL string) ShareLinks {
	u := url.QueryEscape(postURL)
	return ShareLinks{
		WhatsApp: "https://wa.me/?text=" + u,
		Twitter:  "https://twitter.com/share?url=" + u,
		Facebook: "https://facebook.com/share.php?u=" + u,
		LinkedIn: "https://www.linkedin.com/shareArticle?url=" + u,
	}
}
