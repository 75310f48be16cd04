// Package handler is the first layer after the router.
//
// It binds requests, validates input through the validation package,
// and calls the appropriate service. It is the boundary between HTTP
// and the business logic.
package handler
