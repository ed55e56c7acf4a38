// Package handler contains the HTTP handlers for the time tracker API.
//
// Handlers depend on small repository interfaces declared in this package
// so they can be tested with in-memory fakes. Response bodies are flat
// JSON objects: errors carry an "error" key, confirmations a "message"
// key, and field validation failures map the field name to its message.
package handler
