package authz

import (
	"context"
	"errors"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the signed-in user resolved from the session cookie.
type AuthUser struct {
	ID    int64
	Email string
	Name  string
	Role  models.Role
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// Actor converts the user into the booking core's view of the caller.
func (u *AuthUser) Actor() booking.Actor {
	if u == nil {
		return booking.Actor{}
	}
	return booking.Actor{UserID: u.ID, Role: u.Role}
}

func (u *AuthUser) CanManage() bool {
	return u != nil && u.Role.CanManage()
}

func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}

// RequireUser returns ErrUnauthenticated when nobody is signed in.
func RequireUser(ctx context.Context) (*AuthUser, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireRole checks that the signed-in user holds at least minimum.
func RequireRole(ctx context.Context, minimum models.Role) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if rank(user.Role) < rank(minimum) {
		return ErrForbidden
	}
	return nil
}

func rank(role models.Role) int {
	for i, r := range models.Roles() {
		if r == role {
			return i
		}
	}
	return -1
}
