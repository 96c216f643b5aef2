package model

// Caller identifies the principal invoking an operation.
type Caller struct {
	Subject string
	Admin   bool
}

// Anonymous is the caller of public endpoints.
var Anonymous = Caller{}

// Authenticated reports whether caller carries a verified subject.
func (c Caller) Authenticated() bool {
	return c.Subject != ""
}
