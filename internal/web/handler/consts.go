// Package handler holds what the route handlers share: paths, layouts and locals keys.
package handler

const (
	// BaseLayout is the layout of public pages.
	BaseLayout = "layouts/base"

	// AdminLayout is the layout of the admin back office.
	AdminLayout = "layouts/admin"

	// RootPath is the homepage path.
	RootPath = "/"

	// LoginPath is the admin login entry point.
	LoginPath = "/admin_login"

	// LogoutPath clears the admin session.
	LogoutPath = "/admin_logout"

	// AdminPath is the admin panel index.
	AdminPath = "/admin"

	// CurrentAdminLocal is the fiber.Locals key the access guard stores the session identity in.
	CurrentAdminLocal = "CurrentAdmin"

	// ErrNilDepsFatalLogMsg is logged if a handler is created without its dependencies.
	ErrNilDepsFatalLogMsg = "app, cfg, db or a service is nil"
)
