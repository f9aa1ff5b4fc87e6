// internal/api/users/handlers.go
package users

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
	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
	userstempl "github.com/codr1/CourtPlay/internal/templates/components/users"
)

const (
	usersQueryTimeout = 5 * time.Second
	joinedLayout      = "2 Jan 2006"
)

var (
	queries   *dbgen.Queries
	sessions  auth.SessionStore
	usersOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, store auth.SessionStore) {
	if q == nil {
		log.Warn().Msg("InitHandlers called with nil queries; user handlers will be unavailable")
		return
	}
	usersOnce.Do(func() {
		queries = q
		sessions = store
	})
}

// GET /admin/users
func HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	user, ok := apiutil.RequireRole(w, r, models.RoleAdmin)
	if !ok {
		return
	}

	data := userstempl.AdminData{SelfID: user.ID}
	if r.URL.Query().Get("updated") != "" {
		data.Message = "Role updated"
	}
	renderUsersPage(w, r, http.StatusOK, data)
}

// POST /admin/users/{id}/role
func HandleUserRoleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	admin, ok := apiutil.RequireRole(w, r, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	data := userstempl.AdminData{SelfID: admin.ID}
	role, err := models.ParseRole(r.FormValue("role"))
	if err != nil {
		data.Error = "Role must be USER, MANAGER or ADMIN"
		renderUsersPage(w, r, http.StatusBadRequest, data)
		return
	}
	if id == admin.ID {
		data.Error = "You cannot change your own role"
		renderUsersPage(w, r, http.StatusBadRequest, data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usersQueryTimeout)
	defer cancel()

	updated, err := queries.UpdateUserRole(ctx, dbgen.UpdateUserRoleParams{Role: role.String(), ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Int64("target_user_id", id).Msg("Failed to update user role")
		http.Error(w, "Failed to update role", http.StatusInternalServerError)
		return
	}

	// The new role takes effect at the next sign-in.
	if sessions != nil {
		sessions.DeleteUser(updated.ID)
	}
	logger.Info().
		Int64("user_id", admin.ID).
		Int64("target_user_id", updated.ID).
		Str("role", updated.Role).
		Msg("User role updated")

	apiutil.Redirect(w, r, "/admin/users?updated=1")
}

func renderUsersPage(w http.ResponseWriter, r *http.Request, status int, data userstempl.AdminData) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), usersQueryTimeout)
	defer cancel()

	rows, err := queries.ListUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}
	data.Users = make([]userstempl.UserRow, 0, len(rows))
	for _, row := range rows {
		data.Users = append(data.Users, userRowFromDB(row))
	}
	apiutil.RenderPage(w, r, status, "Users", userstempl.AdminPage(data), "Failed to render users page")
}

func userRowFromDB(row dbgen.User) userstempl.UserRow {
	role, err := models.ParseRole(row.Role)
	if err != nil {
		role = models.Role(row.Role)
	}
	joined := row.CreatedAt
	if t, err := db.ParseTimestamp(row.CreatedAt); err == nil {
		joined = t.Format(joinedLayout)
	}
	return userstempl.UserRow{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Phone:     row.Phone.String,
		Role:      role,
		CreatedAt: joined,
	}
}
