// Package middleware holds the global HTTP middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request IDs, request-scoped logging, New Relic tracing, CORS, secure
// headers, panic recovery and the final error-to-JSON translation.
package middleware
