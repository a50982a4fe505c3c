package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/tasktube/internal/auth"
	"github.com/desertthunder/tasktube/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestCredentialRepository(t *testing.T) {
	cred := &auth.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Scopes:       auth.RequiredScopes(),
	}

	t.Run("Load before save returns nil", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		got, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("Save then load round trips", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load credential: %v", err)
		}
		if got == nil {
			t.Fatal("expected a credential")
		}
		if got.AccessToken != cred.AccessToken || got.RefreshToken != cred.RefreshToken {
			t.Errorf("token material mismatch: %+v", got)
		}
		if !got.Expiry.Equal(cred.Expiry) {
			t.Errorf("expiry mismatch: %v != %v", got.Expiry, cred.Expiry)
		}
		if len(got.Scopes) != len(cred.Scopes) {
			t.Errorf("scopes lost in round trip: %v", got.Scopes)
		}
	})

	t.Run("Save replaces the existing record", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		updated := *cred
		updated.AccessToken = "rotated"
		if err := repo.Save(&updated); err != nil {
			t.Fatalf("failed to save updated credential: %v", err)
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load credential: %v", err)
		}
		if got.AccessToken != "rotated" {
			t.Errorf("expected the rotated token, got %q", got.AccessToken)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("expected a single row, found %d", count)
		}
	})

	t.Run("Corrupt blob loads as absent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := db.Exec("INSERT INTO credentials (key, encoded) VALUES (?, ?)", "google", "!!not-base64!!")
		if err != nil {
			t.Fatal(err)
		}

		repo := NewCredentialRepository(db)
		got, err := repo.Load()
		if err != nil {
			t.Fatalf("corrupt blob should not error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for corrupt blob, got %+v", got)
		}
	})

	t.Run("Clear removes the record", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load after clear: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil after clear, got %+v", got)
		}

		// Clearing an empty table is a no-op.
		if err := repo.Clear(); err != nil {
			t.Errorf("clear on empty table failed: %v", err)
		}
	})
}
