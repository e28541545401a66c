// Package api defines the response envelopes shared by all HTTP handlers.
package api

// ErrorResponse is the JSON body returned for any rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the JSON body returned on successful authentication.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
