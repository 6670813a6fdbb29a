package domain

import "errors"

// Sentinel errors for the whole core. The API boundary adapter is the only
// place that maps these to HTTP status codes.
var (
	// 400 — validation class
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmailTaken       = errors.New("email already in use")
	ErrPasswordMismatch = errors.New("password does not match")

	// 401 — credentials or tokens absent
	ErrAuthRequired        = errors.New("authentication required")
	ErrMissingAccessToken  = errors.New("missing access token")
	ErrMissingRefreshToken = errors.New("missing refresh token")

	// 403 — token present but unusable, or identity lacks permission
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("access forbidden")

	// 404
	ErrUserNotFound    = errors.New("user not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")

	// ErrLikeExists is returned by the like repository when an insert hits
	// the (user, target) uniqueness guard. The toggle engine converts it
	// into a delete; it never reaches the API boundary.
	ErrLikeExists = errors.New("like already exists")
)
