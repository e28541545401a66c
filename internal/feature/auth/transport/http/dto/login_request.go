package dto

// LoginReq は/loginエンドポイントのリクエストを表します。
type LoginReq struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
