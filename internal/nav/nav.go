package nav

import "strings"

// Item is a single navigation entry rendered in the header or footer.
type Item struct {
	Key    string
	Href   string
	Label  string // i18n key resolved by the template layer
	Active bool
}

// Crumb is one breadcrumb trail entry. The last crumb has no Href.
type Crumb struct {
	Href  string
	Label string
}

var mainItems = []Item{
	{Key: "home", Href: "/", Label: "nav.home"},
	{Key: "about", Href: "/about", Label: "nav.about"},
	{Key: "contact", Href: "/contact", Label: "nav.contact"},
}

// Main returns the primary navigation with the active entry marked
// for the given request path.
func Main(path string) []Item {
	items := make([]Item, len(mainItems))
	copy(items, mainItems)
	for i := range items {
		items[i].Active = isActive(items[i].Href, path)
	}
	return items
}

// Legal returns the footer links to the legal pages.
func Legal() []Item {
	return []Item{
		{Key: "privacy", Href: "/legal/privacy", Label: "nav.privacy"},
		{Key: "terms", Href: "/legal/terms", Label: "nav.terms"},
		{Key: "disclaimer", Href: "/legal/disclaimer", Label: "nav.disclaimer"},
	}
}

// Breadcrumbs builds a home-rooted trail. The final label is left
// as-is so callers can pass an already-localized title.
func Breadcrumbs(crumbs ...Crumb) []Crumb {
	trail := make([]Crumb, 0, len(crumbs)+1)
	trail = append(trail, Crumb{Href: "/", Label: "nav.home"})
	trail = append(trail, crumbs...)
	return trail
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}
