// internal/api/account/handlers.go
package account

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/booking"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
	accounttempl "github.com/codr1/CourtPlay/internal/templates/components/account"
)

const accountQueryTimeout = 5 * time.Second

var (
	queries     *dbgen.Queries
	sessions    auth.SessionStore
	phoneRegion string
	accountOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// region is the ISO country used for phone numbers entered without a prefix.
func InitHandlers(q *dbgen.Queries, store auth.SessionStore, region string) {
	if q == nil || store == nil {
		log.Warn().Msg("InitHandlers called without queries or session store; account handlers will be unavailable")
		return
	}
	accountOnce.Do(func() {
		queries = q
		sessions = store
		phoneRegion = region
	})
}

// GET /profile
func HandleProfilePage(w http.ResponseWriter, r *http.Request) {
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	row, ok := loadUser(w, r, user)
	if !ok {
		return
	}

	form := accounttempl.ProfileForm{Email: row.Email, Name: row.Name, Phone: row.Phone.String}
	if r.URL.Query().Get("saved") != "" {
		form.Message = "Profile saved"
	}
	apiutil.RenderPage(w, r, http.StatusOK, "Profile", accounttempl.ProfilePage(form), "Failed to render profile")
}

// POST /profile
func HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}
	row, ok := loadUser(w, r, user)
	if !ok {
		return
	}

	name := r.FormValue("name")
	rawPhone := r.FormValue("phone")
	form := accounttempl.ProfileForm{Email: row.Email, Name: name, Phone: rawPhone}

	profile, err := booking.UserPatch{Name: &name, Phone: &rawPhone}.Apply(booking.UserProfile{
		Name:  row.Name,
		Phone: row.Phone.String,
	})
	if err == nil {
		profile.Phone, err = models.NormalizePhone(profile.Phone, phoneRegion)
		if err != nil {
			err = booking.ValidationError{Field: "phone", Reason: "is not a valid phone number"}
		}
	}
	if err != nil {
		form.Error = err.Error()
		apiutil.RenderPage(w, r, http.StatusBadRequest, "Profile", accounttempl.ProfilePage(form), "Failed to render profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), accountQueryTimeout)
	defer cancel()

	if _, err := queries.UpdateUserProfile(ctx, dbgen.UpdateUserProfileParams{
		Name:  profile.Name,
		Phone: apiutil.ToNullString(profile.Phone),
		ID:    user.ID,
	}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update profile")
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("Profile updated")
	apiutil.Redirect(w, r, "/profile?saved=1")
}

// GET /profile/password
func HandlePasswordPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleUser); !ok {
		return
	}
	form := accounttempl.PasswordForm{}
	if r.URL.Query().Get("changed") != "" {
		form.Message = "Password changed"
	}
	apiutil.RenderPage(w, r, http.StatusOK, "Change password", accounttempl.PasswordPage(form), "Failed to render password form")
}

// POST /profile/password
func HandlePasswordChange(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}
	row, ok := loadUser(w, r, user)
	if !ok {
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	fail := func(message string) {
		apiutil.RenderPage(w, r, http.StatusBadRequest, "Change password",
			accounttempl.PasswordPage(accounttempl.PasswordForm{Error: message}), "Failed to render password form")
	}

	if !auth.VerifyPassword(row.PasswordHash, current) {
		logger.Warn().Int64("user_id", user.ID).Msg("Password change with wrong current password")
		fail("Current password is incorrect")
		return
	}
	if next != r.FormValue("confirm_password") {
		fail("New passwords do not match")
		return
	}
	if err := auth.ValidateNewPassword(next); err != nil {
		fail(err.Error())
		return
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), accountQueryTimeout)
	defer cancel()

	if _, err := queries.UpdateUserPassword(ctx, dbgen.UpdateUserPasswordParams{PasswordHash: hash, ID: user.ID}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update password")
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	// Signs out every other session and keeps this browser signed in.
	if err := auth.CreateSession(w, sessions, user.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to renew session")
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("Password changed")
	apiutil.Redirect(w, r, "/profile/password?changed=1")
}

func loadUser(w http.ResponseWriter, r *http.Request, user *authz.AuthUser) (dbgen.User, bool) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Account handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return dbgen.User{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), accountQueryTimeout)
	defer cancel()

	row, err := queries.GetUserByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "User not found")
			return dbgen.User{}, false
		}
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load user")
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return dbgen.User{}, false
	}
	return row, true
}
