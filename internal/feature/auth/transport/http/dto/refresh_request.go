package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `form:"refresh_token" json:"refresh_token" binding:"required"`
}
