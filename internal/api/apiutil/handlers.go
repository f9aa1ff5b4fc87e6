package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/api/htmx"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/models"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

// WantsJSON reports whether the caller should get JSON errors instead of text.
func WantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteError writes status and message in the representation the caller asked for.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if WantsJSON(r) {
		if err := WriteJSON(w, status, errorResponse{Error: message}); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write error response")
		}
		return
	}
	http.Error(w, message, status)
}

// BookingErrorStatus maps a booking core error to an HTTP status and a
// client-safe message. Unknown errors map to 500.
func BookingErrorStatus(err error) (int, string) {
	var batchErr booking.BatchError
	prefix := ""
	if errors.As(err, &batchErr) {
		prefix = fmt.Sprintf("slot %d: ", batchErr.Item+1)
		err = batchErr.Err
	}

	var (
		validationErr booking.ValidationError
		conflictErr   booking.ConflictError
		notFoundErr   booking.NotFoundError
		authErr       booking.AuthorizationError
		handlerErr    HandlerError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, prefix + validationErr.Error()
	case errors.As(err, &conflictErr):
		if conflictErr.Blocked {
			return http.StatusConflict, prefix + "court is closed for maintenance at that time"
		}
		return http.StatusConflict, prefix + "slot is already reserved"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, prefix + notFoundErr.Error()
	case errors.As(err, &authErr):
		return http.StatusForbidden, "Forbidden"
	case errors.As(err, &handlerErr):
		return handlerErr.Status, handlerErr.Message
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// WriteBookingError logs err and writes the mapped response.
func WriteBookingError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := log.Ctx(r.Context())
	status, message := BookingErrorStatus(err)
	ObserveBookingError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(msg)
	} else {
		logger.Warn().Err(err).Int("status", status).Msg(msg)
	}
	WriteError(w, r, status, message)
}

// ObserveBookingError counts slot conflicts. Handlers that render err
// themselves call it directly.
func ObserveBookingError(err error) {
	var conflictErr booking.ConflictError
	if errors.As(err, &conflictErr) {
		metrics.ReservationConflicts.Inc()
	}
}

// RequireRole writes 401 or 403 and returns false unless the signed-in user
// holds at least minimum.
func RequireRole(w http.ResponseWriter, r *http.Request, minimum models.Role) (*authz.AuthUser, bool) {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	if err := authz.RequireRole(r.Context(), minimum); err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			logger.Warn().Str("required_role", minimum.String()).Msg("Access denied: unauthenticated")
			if !WantsJSON(r) && r.Method == http.MethodGet {
				Redirect(w, r, "/login?next="+r.URL.RequestURI())
				return nil, false
			}
			WriteError(w, r, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, authz.ErrForbidden):
			logger.Warn().
				Int64("user_id", user.ID).
				Str("role", user.Role.String()).
				Str("required_role", minimum.String()).
				Msg("Access denied: forbidden")
			WriteError(w, r, http.StatusForbidden, "Forbidden")
		default:
			logger.Error().Err(err).Msg("Access denied: error")
			WriteError(w, r, http.StatusInternalServerError, "Failed to authorize request")
		}
		return nil, false
	}
	return user, true
}

// Redirect sends HTMX requests an HX-Redirect header and everyone else a 303.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if htmx.IsRequest(r) {
		htmx.Redirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RenderHTMLComponent buffers component so a render error can still produce
// a clean 500 instead of a half-written page.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, status int, component templ.Component, headers map[string]string, logMsg string) bool {
	logger := log.Ctx(ctx)
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		logger.Error().Err(err).Msg(logMsg)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
	return true
}
