package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// OAuth scopes the application requests; both are read-only.
const (
	ScopeTasksReadonly   = "https://www.googleapis.com/auth/tasks.readonly"
	ScopeYouTubeReadonly = "https://www.googleapis.com/auth/youtube.readonly"
)

// RequiredScopes returns the scope set a credential must carry to be valid.
func RequiredScopes() []string {
	return []string{ScopeTasksReadonly, ScopeYouTubeReadonly}
}

// expirySkew treats tokens about to expire as already expired so a request
// issued right after the check does not race the deadline.
const expirySkew = 30 * time.Second

// Credential is the persisted OAuth record: token material, expiry, and the
// granted scope set. Owned by [Store]; other packages receive copies.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes"`
}

// Expired reports whether the access token's deadline has passed. A zero
// expiry means the provider did not bound the token.
func (c *Credential) Expired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry.Add(-expirySkew))
}

// HasScopes reports whether every required scope was granted.
func (c *Credential) HasScopes(required ...string) bool {
	granted := make(map[string]bool, len(c.Scopes))
	for _, s := range c.Scopes {
		granted[s] = true
	}
	for _, s := range required {
		if !granted[s] {
			return false
		}
	}
	return true
}

// Valid reports whether the credential is usable: non-nil, unexpired, and
// carrying the required scopes. Computed locally; no network call.
func (c *Credential) Valid() bool {
	return c != nil && !c.Expired() && c.HasScopes(RequiredScopes()...)
}

// Token converts the credential into the [oauth2.Token] shape the transport
// layer consumes.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// credentialFromToken builds a Credential from a freshly exchanged or
// refreshed token, carrying over the scope set the flow requested.
func credentialFromToken(tok *oauth2.Token, scopes []string) *Credential {
	return &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       append([]string(nil), scopes...),
	}
}
