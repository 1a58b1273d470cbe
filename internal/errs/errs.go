// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldErrors for request validation, HTTPError for API responses)
// so clients receive meaningful and consistent error envelopes:
//
//	{ "success": false, "message": "...", "code": "...", "errors": [...] }
//
// Three kinds of failure reach API clients: validation (400),
// not found (404) and unexpected (500). Rate limiting adds 429.
package errs
