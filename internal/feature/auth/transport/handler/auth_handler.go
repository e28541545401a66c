// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/feature/auth/transport/http/dto"
	"finance_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、そのまま認証してトークンペアを返します。
	Register(ctx context.Context, username, password, confirmation string, meta entity.SessionMeta) (*entity.TokenPair, error)
	// Login はユーザーを認証し、成功時にトークンペアを返します。
	Login(ctx context.Context, username, password string, meta entity.SessionMeta) (*entity.TokenPair, error)
	// Logout は提示されたリフレッシュセッションを失効させます（冪等）。
	Logout(ctx context.Context, refreshToken string) error
	// Refresh はリフレッシュトークンを検証し、新しいトークンペアを発行します。
	Refresh(ctx context.Context, refreshToken string, meta entity.SessionMeta) (*entity.TokenPair, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// sessionMeta はリクエストからセッション監査用メタデータを抽出します。
func sessionMeta(c *gin.Context) entity.SessionMeta {
	return entity.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// RegisterPage はGET /registerを処理します。
// テンプレート描画は外部コラボレーターのため、最小限の応答を返します。
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "register"})
}

// Register はユーザー登録エンドポイントを処理します。
// - バリデーションエラー時（欠落フィールド、確認不一致、重複ユーザー名）は400を返却
// - 成功時は登録直後に認証し、201でトークンペアを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	pair, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingUsername),
			errors.Is(err, usecase.ErrMissingPassword),
			errors.Is(err, usecase.ErrPasswordMismatch),
			errors.Is(err, usecase.ErrUsernameAlreadyExists):
			slog.Warn("register rejected", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "register failed"})
		}
		return
	}

	slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// LoginPage はGET /loginを処理します。
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "login"})
}

// Login はユーザーログインエンドポイントを処理します。
// 認証失敗（フィールド欠落・資格情報不一致）は403を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "invalid request"})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingUsername),
			errors.Is(err, usecase.ErrMissingPassword),
			errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("login rejected", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		}
		return
	}

	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout はGET /logoutを処理します。
// 提示されたリフレッシュセッションを無条件に失効させ、ホームへリダイレクトします。
// 繰り返し呼び出してもエラーになりません。
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.Query("refresh_token")
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "logout failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Refresh はトークンリフレッシュエンドポイントを処理します。
// 無効・失効・期限切れセッションは401を返します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		default:
			slog.Error("refresh failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}
