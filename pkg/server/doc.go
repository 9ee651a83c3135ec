// Package server assembles the gateway's HTTP surface: routes, the
// middleware chain, and graceful lifecycle management.
package server
