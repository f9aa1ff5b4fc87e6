package account

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/testutil"
)

const oldPassword = "baseline-rally"

func setupAccountTest(t *testing.T) (*db.DB, *auth.MemoryStore, dbgen.User) {
	t.Helper()

	database := testutil.NewTestDB(t)
	store := auth.NewMemoryStore(time.Hour, nil)

	hash, err := auth.HashPassword(oldPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := testutil.CreateUserWithHash(t, database, "player@example.com", "USER", hash)

	queries = nil
	sessions = nil
	phoneRegion = ""
	accountOnce = sync.Once{}
	InitHandlers(database.Queries, store, "CZ")

	t.Cleanup(func() {
		queries = nil
		sessions = nil
		phoneRegion = ""
		accountOnce = sync.Once{}
	})

	return database, store, user
}

func withUser(req *http.Request, user dbgen.User) *http.Request {
	authUser := &authz.AuthUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: models.RoleUser}
	return req.WithContext(authz.ContextWithUser(req.Context(), authUser))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleProfilePage(t *testing.T) {
	_, _, user := setupAccountTest(t)

	rec := httptest.NewRecorder()
	HandleProfilePage(rec, withUser(httptest.NewRequest(http.MethodGet, "/profile?saved=1", nil), user))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "player@example.com") || !strings.Contains(body, "Profile saved") {
		t.Fatalf("unexpected profile page: %s", body)
	}
}

func TestHandleProfileUpdateNormalizesPhone(t *testing.T) {
	database, _, user := setupAccountTest(t)

	form := url.Values{}
	form.Set("name", "  Jana Nováková ")
	form.Set("phone", "601 123 456")
	rec := httptest.NewRecorder()
	HandleProfileUpdate(rec, withUser(postForm("/profile", form), user))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	got, err := database.Queries.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "Jana Nováková" || got.Phone.String != "+420601123456" {
		t.Fatalf("unexpected profile: name=%q phone=%q", got.Name, got.Phone.String)
	}
}

func TestHandleProfileUpdateClearsPhone(t *testing.T) {
	database, _, user := setupAccountTest(t)

	form := url.Values{}
	form.Set("name", "Player")
	form.Set("phone", "")
	rec := httptest.NewRecorder()
	HandleProfileUpdate(rec, withUser(postForm("/profile", form), user))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	got, err := database.Queries.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Phone.Valid {
		t.Fatalf("expected NULL phone, got %q", got.Phone.String)
	}
}

func TestHandleProfileUpdateValidation(t *testing.T) {
	_, _, user := setupAccountTest(t)

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "blank name", field: "name", value: "  ", want: "name is required"},
		{name: "bad phone", field: "phone", value: "12", want: "phone is not a valid phone number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("name", "Player")
			form.Set(tc.field, tc.value)
			rec := httptest.NewRecorder()
			HandleProfileUpdate(rec, withUser(postForm("/profile", form), user))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected %q in body", tc.want)
			}
		})
	}
}

func TestHandlePasswordChange(t *testing.T) {
	database, store, user := setupAccountTest(t)
	for i := 0; i < 2; i++ {
		if _, _, err := store.Create(user.ID); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	form := url.Values{}
	form.Set("current_password", oldPassword)
	form.Set("new_password", "drop-shot-2030")
	form.Set("confirm_password", "drop-shot-2030")
	rec := httptest.NewRecorder()
	HandlePasswordChange(rec, withUser(postForm("/profile/password", form), user))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.Len() != 1 {
		t.Fatalf("expected only the renewed session, got %d", store.Len())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatalf("expected a new session cookie")
	}

	got, err := database.Queries.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !auth.VerifyPassword(got.PasswordHash, "drop-shot-2030") {
		t.Fatalf("expected new password to verify")
	}
}

func TestHandlePasswordChangeRejects(t *testing.T) {
	database, _, user := setupAccountTest(t)

	tests := []struct {
		name    string
		current string
		next    string
		confirm string
		want    string
	}{
		{name: "wrong current", current: "nope", next: "drop-shot-2030", confirm: "drop-shot-2030", want: "Current password is incorrect"},
		{name: "mismatch", current: oldPassword, next: "drop-shot-2030", confirm: "drop-shot-2031", want: "do not match"},
		{name: "too short", current: oldPassword, next: "short", confirm: "short", want: "at least 8 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("current_password", tc.current)
			form.Set("new_password", tc.next)
			form.Set("confirm_password", tc.confirm)
			rec := httptest.NewRecorder()
			HandlePasswordChange(rec, withUser(postForm("/profile/password", form), user))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected %q in body", tc.want)
			}
		})
	}

	got, err := database.Queries.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !auth.VerifyPassword(got.PasswordHash, oldPassword) {
		t.Fatalf("password should be unchanged")
	}
}
