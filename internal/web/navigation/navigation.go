// Package navigation provides the page title and menu state for the base layout.
package navigation

// Link represents a single menu entry.
type Link struct {
	Title  string
	URL    string
	Page   string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActivePage string
	Links      []Link
	PageTitle  string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:  pageTitle,
		ActivePage: activePage,
		Links:      make([]Link, 0),
	}
}

// AddLink adds a menu entry, marked active when page is the active page.
func (c *Context) AddLink(title, url, page string) *Context {
	c.Links = append(c.Links, Link{
		Title:  title,
		URL:    url,
		Page:   page,
		Active: page == c.ActivePage,
	})

	return c
}

// IsActive checks if page is the current page.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
