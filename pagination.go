package main

import (
	"net/url"
	"strconv"
)

type Page struct {
	Num int
	URL string
}

type Pages []Page

type PaginationConfig struct {
	ipp   int
	page  int
	total int
	url   string
	param string
}

func pageCount(total, ipp int) int {
	return (total + ipp - 1) / ipp
}

// Pagination lists the page links. The current page has no URL and a single
// page produces no links.
func Pagination(pc PaginationConfig) Pages {
	if pc.total <= pc.ipp {
		return Pages{}
	}
	if pc.page < 1 {
		pc.page = 1
	}
	base, err := url.Parse(pc.url)
	if err != nil {
		base = &url.URL{}
	}
	query := base.Query()
	count := pageCount(pc.total, pc.ipp)
	pages := make(Pages, count)
	for i := 1; i <= count; i++ {
		link := ""
		if i != pc.page {
			query.Set(pc.param, strconv.Itoa(i))
			base.RawQuery = query.Encode()
			link = base.String()
		}
		pages[i-1] = Page{i, link}
	}
	return pages
}

// pageWindow returns the bounds of page (0 based) within total items.
func pageWindow(page, ipp, total int) (int, int) {
	start := page * ipp
	if start > total {
		start = total
	}
	end := start + ipp
	if end > total {
		end = total
	}
	return start, end
}

func getPageNumber(pageStr string) int {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0
	}
	return page - 1
}
