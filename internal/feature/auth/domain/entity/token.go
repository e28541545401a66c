package entity

// TokenPair bundles the credentials issued on a successful
// registration, login or refresh.
type TokenPair struct {
	AccessToken  string // Signed JWT access token
	RefreshToken string // Opaque refresh session ID
	ExpiresIn    int64  // Access token lifetime in seconds
}
