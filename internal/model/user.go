package model

// User is the authenticated identity attached to a request. Accounts live
// in an external identity store; posts only reference them by ID.
type User struct {
	ID    int64
	Name  string
	Email string
}
