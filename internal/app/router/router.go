package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "finance_backend/internal/feature/auth/transport/handler"
	ledgerhandler "finance_backend/internal/feature/ledger/transport/handler"
	jwtmw "finance_backend/internal/platform/jwt"
)

// NoCache はすべてのレスポンスにキャッシュ無効化ヘッダーを付与します。
// 残高や保有銘柄が戻るボタンで古い状態のまま表示されるのを防ぎます。
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

// Health は導通確認用のハンドラーです。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func NewRouter(authHandler *authhandler.AuthHandler, ledger *ledgerhandler.LedgerHandler) *gin.Engine {
	r := gin.Default()
	r.Use(NoCache())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", Health)
	// 新規ユーザー登録
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	// ログアウト（リフレッシュトークン失効）
	r.GET("/logout", authHandler.Logout)
	// アクセストークンの更新
	r.POST("/refresh", authHandler.Refresh)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/", ledger.Portfolio)
		auth.GET("/buy", ledger.BuyPage)
		auth.POST("/buy", ledger.Buy)
		auth.GET("/sell", ledger.SellPage)
		auth.POST("/sell", ledger.Sell)
		auth.GET("/cash", ledger.CashPage)
		auth.POST("/cash", ledger.Deposit)
		auth.GET("/quote", ledger.QuotePage)
		auth.POST("/quote", ledger.Quote)
		auth.GET("/history", ledger.History)
	}

	return r
}
