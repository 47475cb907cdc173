// Package navigation builds the breadcrumbs and the active menu entry of admin pages.
package navigation

// AdminTitle is the root breadcrumb of every admin page.
const AdminTitle = "Admin"

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation state of a page.
type Context struct {
	PageTitle   string
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
}

// NewContext creates an empty navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Breadcrumbs: make([]BreadcrumbItem, 0),
	}
}

// Admin creates a context starting with the admin index breadcrumb.
func Admin(adminPath, pageTitle, activePage string) *Context {
	return NewContext(pageTitle, activePage).Crumb(AdminTitle, adminPath)
}

// Crumb adds a link to a parent page.
func (c *Context) Crumb(title, url string) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{Title: title, URL: url})

	return c
}

// Current adds the breadcrumb of the page itself and marks it active.
// Any previously active breadcrumb becomes a link.
func (c *Context) Current(title, url string) *Context {
	for i := range c.Breadcrumbs {
		c.Breadcrumbs[i].Active = false
	}

	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{Title: title, URL: url, Active: true})

	return c
}

// IsActive reports whether page is the active menu entry.
func (c *Context) IsActive(page string) bool {
	return c != nil && c.ActivePage == page
}
