package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "course-platform context key " + string(c)
}

// UserIDKey is the key for the authenticated user's ID in context.Context
const UserIDKey = contextKey("userID")

// AccountTypeKey is the key for the authenticated user's account type
const AccountTypeKey = contextKey("accountType")

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// Fiber locals keys. Locals are keyed by string.
const (
	ClaimsLocal    = "user"
	UploadsLocal   = "files"
	RequestIDLocal = "requestid"
)
