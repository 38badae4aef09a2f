package ports

// Principal is the authenticated identity derived from a verified session
// token: the user id (string form of the numeric id, the token subject) and
// the role claim. The role is trusted as issued: roles are immutable after
// registration, so a token can never carry a stale role within its lifetime.
type Principal struct {
	UserID string
	Role   string
}
