// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
//
// Path ids are bound from `param` tags and excluded from JSON with
// `json:"-"` so a body can never overwrite them.
package handler

// EmptyRequest is used by routes that take neither path ids nor a body.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// UserPathRequest binds /api/users/:userId.
type UserPathRequest struct {
	UserID int64 `param:"userId" json:"-"`
}

func (r *UserPathRequest) Validate() error {
	return nil
}
