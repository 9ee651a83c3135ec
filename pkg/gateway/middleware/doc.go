// Package middleware provides the HTTP middleware chain for the gateway:
// request ID tagging, structured access logging, CORS, and panic
// recovery.
package middleware
