package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/codr1/CourtPlay/internal/api/authz"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
)

const sessionCookieName = "courtplay_session"

// SetCookieSecurity controls the Secure flag on session cookies.
// Production deployments serve over TLS; local development does not.
func SetCookieSecurity(secure bool) {
	secureCookies = secure
}

var secureCookies = true

// CreateSession starts a new session for userID and sets the cookie.
// Any earlier sessions for the same user are dropped.
func CreateSession(w http.ResponseWriter, store SessionStore, userID int64) error {
	if w == nil || store == nil {
		return errors.New("session requires response writer and store")
	}

	store.DeleteUser(userID)

	token, expiresAt, err := store.Create(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})

	return nil
}

// ClearSession deletes the session named by the request cookie and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request, store SessionStore) {
	if r != nil && store != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			store.Delete(cookie.Value)
		}
	}

	ClearSessionCookie(w)
}

func ClearSessionCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the session cookie to a user.
// It returns nil without error when there is no valid session.
func UserFromRequest(w http.ResponseWriter, r *http.Request, store SessionStore, q *dbgen.Queries) (*authz.AuthUser, error) {
	if r == nil || store == nil {
		return nil, nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	token := cookie.Value
	userID, ok := store.Get(token)
	if !ok {
		ClearSessionCookie(w)
		return nil, nil
	}

	if q == nil {
		return nil, errors.New("auth queries not initialized")
	}

	user, err := q.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			store.Delete(token)
			ClearSessionCookie(w)
			return nil, nil
		}
		return nil, err
	}

	return authUserFromDB(user)
}

func authUserFromDB(user dbgen.User) (*authz.AuthUser, error) {
	role, err := models.ParseRole(user.Role)
	if err != nil {
		return nil, err
	}
	return &authz.AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  role,
	}, nil
}
