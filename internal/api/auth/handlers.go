package auth

import (
	"database/sql"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/api/htmx"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/ratelimit"
	authtempl "github.com/codr1/CourtPlay/internal/templates/components/auth"
)

const (
	defaultLandingPath  = "/dashboard"
	invalidLoginMessage = "Invalid email or password"
)

var (
	queries    *dbgen.Queries
	sessions   SessionStore
	limiter    *ratelimit.Limiter
	trustProxy bool
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, store SessionStore, l *ratelimit.Limiter, trustProxyHeaders bool) {
	queries = q
	sessions = store
	limiter = l
	trustProxy = trustProxyHeaders
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if authz.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
		return
	}

	data := authtempl.LoginData{Next: safeNext(r.URL.Query().Get("next"))}
	apiutil.RenderPage(w, r, http.StatusOK, "Sign in", authtempl.LoginPage(data), "Failed to render login page")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil || sessions == nil || limiter == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data := authtempl.LoginData{Email: email, Next: safeNext(r.FormValue("next"))}

	if email == "" || password == "" {
		data.Error = "Email and password are required"
		renderLoginForm(w, r, http.StatusBadRequest, data)
		return
	}

	ip := ratelimit.GetClientIP(r, trustProxy)
	if result := limiter.CheckLogin(email, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded(email, ip, result.Reason)
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
		data.Error = "Too many login attempts. Please try again later."
		renderLoginForm(w, r, http.StatusTooManyRequests, data)
		return
	}

	user, err := queries.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err != nil || !VerifyPassword(user.PasswordHash, password) {
		if limiter.RecordFailure(email) {
			logger.Warn().
				Str("identifier", ratelimit.SanitizeEmail(email)).
				Str("ip", ip).
				Msg("Login locked after repeated failures")
		}
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		data.Error = invalidLoginMessage
		renderLoginForm(w, r, http.StatusUnauthorized, data)
		return
	}

	limiter.Reset(email)
	if err := CreateSession(w, sessions, user.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("User signed in")
	apiutil.Redirect(w, r, data.Next)
}

// POST /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user := authz.UserFromContext(r.Context()); user != nil {
		log.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User signed out")
	}
	ClearSession(w, r, sessions)
	apiutil.Redirect(w, r, "/login")
}

func renderLoginForm(w http.ResponseWriter, r *http.Request, status int, data authtempl.LoginData) {
	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, status, authtempl.LoginForm(data), nil, "Failed to render login form")
		return
	}
	apiutil.RenderPage(w, r, status, "Sign in", authtempl.LoginPage(data), "Failed to render login page")
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultLandingPath
	}
	if strings.HasPrefix(next, "/login") {
		return defaultLandingPath
	}
	return next
}
