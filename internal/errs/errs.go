// Package errs defines the error types returned to API clients.
//
// Every failure a handler returns ends up as an HTTPError so clients
// always receive the same JSON shape:
//
//	{ "code": "USER_NOT_FOUND", "message": "User not found", "status": 404, ... }
package errs
