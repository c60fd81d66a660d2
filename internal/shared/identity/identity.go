// Package identity models who is making a request.
package identity

// Identity is either Anonymous or Identified. The unexported method closes the set.
type Identity interface {
	isIdentity()
}

// Anonymous is a caller without a verified token.
type Anonymous struct{}

// Identified is a caller whose token resolved to an existing user.
type Identified struct {
	UserID uint
}

func (Anonymous) isIdentity()  {}
func (Identified) isIdentity() {}

// UserID returns the caller's user id and true when id is Identified.
func UserID(id Identity) (uint, bool) {
	if v, ok := id.(Identified); ok {
		return v.UserID, true
	}
	return 0, false
}

// Is reports whether id identifies the user userID.
func Is(id Identity, userID uint) bool {
	uid, ok := UserID(id)
	return ok && uid == userID
}
