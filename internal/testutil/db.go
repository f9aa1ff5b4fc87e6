package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// PasswordHashPlaceholder is stored for seeded users that never log in.
const PasswordHashPlaceholder = "not-a-bcrypt-hash"

// CreateUser inserts a user with the given role and returns it.
func CreateUser(t *testing.T, database *db.DB, email, role string) dbgen.User {
	t.Helper()
	return CreateUserWithHash(t, database, email, role, PasswordHashPlaceholder)
}

func CreateUserWithHash(t *testing.T, database *db.DB, email, role, passwordHash string) dbgen.User {
	t.Helper()
	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email:        email,
		Name:         fmt.Sprintf("User %s", email),
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    db.FormatTimestamp(time.Now()),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func CreateCourt(t *testing.T, database *db.DB, name string, outdoor bool) dbgen.Court {
	t.Helper()
	court, err := database.Queries.CreateCourt(context.Background(), dbgen.CreateCourtParams{
		Name:    name,
		Outdoor: outdoor,
		Status:  "open",
		Note:    sql.NullString{},
	})
	if err != nil {
		t.Fatalf("create court %s: %v", name, err)
	}
	return court
}

func CreatePriceEntry(t *testing.T, database *db.DB, durationMin int64, opening, closing string, baseCents int64, multiplier float64) dbgen.PriceListEntry {
	t.Helper()
	entry, err := database.Queries.CreatePriceListEntry(context.Background(), dbgen.CreatePriceListEntryParams{
		DurationMin:      durationMin,
		OpeningTime:      opening,
		ClosingTime:      closing,
		BasePriceCents:   baseCents,
		IndoorMultiplier: multiplier,
	})
	if err != nil {
		t.Fatalf("create price entry: %v", err)
	}
	return entry
}
