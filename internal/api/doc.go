// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts between external clients and the
// internal services, translating HTTP concerns to business operations
// and internal errors back to status codes in one place.
package api
