package repositories

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/tasktube/internal/auth"
)

// credentialKey identifies the single mirrored record. The table supports
// multiple keys so additional providers can be mirrored later without a
// migration.
const credentialKey = "google"

// CredentialRepository mirrors the primary credential file into sqlite. It
// implements [auth.Mirror]. The credential is stored base64-encoded so the
// schema stays agnostic to the token format.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save upserts the mirrored credential.
func (r *CredentialRepository) Save(cred *auth.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	query := `
		INSERT INTO credentials (key, encoded, expiry, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET encoded = excluded.encoded, expiry = excluded.expiry, updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query, credentialKey, encoded, cred.Expiry, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}

	return nil
}

// Load returns the mirrored credential, or nil when none is stored. A blob
// that no longer decodes is treated as absent, not as an error.
func (r *CredentialRepository) Load() (*auth.Credential, error) {
	query := `
		SELECT encoded FROM credentials WHERE key = ?
	`

	var encoded string
	err := r.db.QueryRow(query, credentialKey).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil
	}

	var cred auth.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, nil
	}
	if cred.AccessToken == "" {
		return nil, nil
	}

	return &cred, nil
}

// Clear removes the mirrored credential. Absence is not an error.
func (r *CredentialRepository) Clear() error {
	query := `
		DELETE FROM credentials WHERE key = ?
	`

	if _, err := r.db.Exec(query, credentialKey); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	return nil
}
