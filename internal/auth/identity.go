// Package auth holds the identity model, the post authorization policy and
// the session token codec.
package auth

// AdminUserID is the ID conventionally assigned to the first registered
// account, which acts as the site administrator.
const AdminUserID uint = 1

// Identity is the capability a request carries after session resolution.
// Handlers and services receive it explicitly; there is no ambient
// "current user".
type Identity interface {
	UserID() uint
	IsAuthenticated() bool
}

// UserIdentity is an authenticated user.
type UserIdentity struct {
	ID uint
}

func (u UserIdentity) UserID() uint          { return u.ID }
func (u UserIdentity) IsAuthenticated() bool { return true }

type anonymous struct{}

func (anonymous) UserID() uint          { return 0 }
func (anonymous) IsAuthenticated() bool { return false }

// Anonymous is the identity of an unauthenticated request.
var Anonymous Identity = anonymous{}
