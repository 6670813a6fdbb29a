package ports

import "time"

// TokenPair carries a freshly issued access/refresh token pair together
// with the lifetime of each token (used by the transport layer to set
// cookie max-ages).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// TokenService issues and verifies signed session tokens. Both token kinds
// embed the user id as the only claim.
type TokenService interface {
	Issue(userID string) (TokenPair, error)
	// VerifyAccess returns the user id embedded in a valid access token,
	// or domain.ErrInvalidToken on signature mismatch, expiry, or a
	// malformed payload.
	VerifyAccess(token string) (string, error)
	// VerifyRefresh is VerifyAccess for refresh tokens (distinct secret).
	VerifyRefresh(token string) (string, error)
}
