// Package middleware contains HTTP middleware for the status server.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context locals and response headers for tracing.
package middleware
