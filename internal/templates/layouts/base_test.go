package layouts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/codr1/CourtPlay/internal/models"
)

func render(t *testing.T, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Base(Home(page.AppName, page.User != nil), page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestBaseNavigationByRole(t *testing.T) {
	anon := render(t, Page{AppName: "Court & Play"})
	if !strings.Contains(anon, `href="/login"`) || strings.Contains(anon, "/admin/") {
		t.Fatalf("anonymous nav wrong: %s", anon)
	}
	if !strings.Contains(anon, "Court &amp; Play") {
		t.Fatalf("app name not escaped")
	}

	user := render(t, Page{AppName: "X", User: &NavUser{Name: "Pat", Role: models.RoleUser}})
	if strings.Contains(user, "/admin/") || !strings.Contains(user, "/reservations/mine") {
		t.Fatalf("user nav wrong")
	}

	manager := render(t, Page{AppName: "X", User: &NavUser{Name: "Sam", Role: models.RoleManager}})
	if !strings.Contains(manager, "/admin/courts") || strings.Contains(manager, "/admin/users") {
		t.Fatalf("manager nav wrong")
	}

	admin := render(t, Page{AppName: "X", User: &NavUser{Name: "Ada", Role: models.RoleAdmin}})
	if !strings.Contains(admin, "/admin/users") {
		t.Fatalf("admin nav missing users link")
	}
}
