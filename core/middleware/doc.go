// Package middleware groups the HTTP middleware used by the start command:
// rayid assigns a unique id to every request for log correlation, and auth
// protects the API with a shared key.
package middleware
