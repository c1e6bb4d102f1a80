package scene

import "strings"

// Page identifies one of the site's pages that carries a decorative background.
type Page string

const (
	PageHome     Page = "home"
	PageAbout    Page = "about"
	PageEvents   Page = "events"
	PageSponsors Page = "sponsors"
	PageRegister Page = "register"
)

// Pages returns every page with a background, in navigation order.
func Pages() []Page {
	return []Page{PageHome, PageAbout, PageEvents, PageSponsors, PageRegister}
}

// Valid reports whether p is one of the enumerated pages.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageAbout, PageEvents, PageSponsors, PageRegister:
		return true
	}
	return false
}

// PageFromPath maps a route path to its page. Query strings, fragments and
// a trailing slash are ignored. The second return is false for routes
// without a background (admin pages, unknown paths).
func PageFromPath(path string) (Page, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	switch path {
	case "/":
		return PageHome, true
	case "/about":
		return PageAbout, true
	case "/events":
		return PageEvents, true
	case "/sponsors":
		return PageSponsors, true
	case "/register":
		return PageRegister, true
	}
	return "", false
}
