// Package auth provides the access guard for the admin back office.
//
// Guard checks the session of every request to a protected route:
//   - no authenticated administrator in the session: redirect to the login page,
//     the protected handler is never called
//   - the session's administrator was removed: the session is destroyed and
//     the request is redirected to the login page
//   - authenticated: the identity is stored in fiber.Locals under
//     handler.CurrentAdminLocal and the request continues unchanged
//
// Guard is attached per route rather than per route group, because fiber's
// prefix matching would also catch /admin_login under an /admin group.
//
// Usage:
//
//	guard := auth.Guard(sessions, localProvider)
//	app.Get(handler.AdminPath, guard, index)
package auth
