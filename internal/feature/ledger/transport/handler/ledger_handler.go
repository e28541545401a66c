// Package handler はledgerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/transport/http/dto"
	"finance_backend/internal/feature/ledger/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// LedgerUsecase は台帳操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type LedgerUsecase interface {
	Portfolio(ctx context.Context, userID uint) (*entity.PortfolioSummary, error)
	Buy(ctx context.Context, userID uint, symbol, shares string) error
	Sell(ctx context.Context, userID uint, symbol, shares string) error
	Deposit(ctx context.Context, userID uint, amount string) error
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	History(ctx context.Context, userID uint) ([]entity.HistoryEntry, error)
	OwnedSymbols(ctx context.Context, userID uint) ([]string, error)
}

// LedgerHandler は台帳操作のHTTPリクエストを処理します。
type LedgerHandler struct {
	ledger LedgerUsecase
}

// NewLedgerHandler は指定されたusecaseでLedgerHandlerの新しいインスタンスを生成します。
func NewLedgerHandler(ledger LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// rejectionStatus は台帳のバリデーションエラーをHTTPステータスに対応付けます。
// 資金不足は402、その他の拒否は400です（認証失敗の403はauth側）。
func rejectionStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, usecase.ErrInsufficientFunds):
		return http.StatusPaymentRequired, true
	case errors.Is(err, usecase.ErrMissingSymbol),
		errors.Is(err, usecase.ErrMissingShares),
		errors.Is(err, usecase.ErrInvalidShares),
		errors.Is(err, usecase.ErrMissingCash),
		errors.Is(err, usecase.ErrInvalidCash),
		errors.Is(err, usecase.ErrSymbolNotFound),
		errors.Is(err, usecase.ErrNotOwned),
		errors.Is(err, usecase.ErrInsufficientHoldings):
		return http.StatusBadRequest, true
	}
	return 0, false
}

// reject はバリデーションエラーを拒否応答として返し、
// 想定外のエラーは500/502として処理します。
func (h *LedgerHandler) reject(c *gin.Context, op string, err error) {
	if status, ok := rejectionStatus(err); ok {
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: op + " failed"})
}

// userID は認証ミドルウェアがコンテキストに設定したユーザーIDを返します。
func userID(c *gin.Context) uint {
	return c.GetUint(jwtmw.ContextUserID)
}

// Portfolio はGET /を処理します。
// 保有銘柄の価格を再取得し、評価済みポートフォリオを返します。
func (h *LedgerHandler) Portfolio(c *gin.Context) {
	summary, err := h.ledger.Portfolio(c.Request.Context(), userID(c))
	if err != nil {
		h.reject(c, "portfolio", err)
		return
	}

	positions := make([]dto.PositionRes, 0, len(summary.Positions))
	for _, p := range summary.Positions {
		positions = append(positions, dto.PositionRes{
			Symbol: p.Symbol,
			Name:   p.Name,
			Shares: p.Shares,
			Price:  p.Price,
			Total:  p.Total,
		})
	}
	c.JSON(http.StatusOK, dto.PortfolioRes{
		Positions:  positions,
		Cash:       summary.Cash,
		GrandTotal: summary.GrandTotal,
	})
}

// BuyPage はGET /buyを処理します。
func (h *LedgerHandler) BuyPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "buy"})
}

// Buy はPOST /buyを処理します。成功時はホームへリダイレクトします。
func (h *LedgerHandler) Buy(c *gin.Context) {
	var req dto.TradeReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.ledger.Buy(c.Request.Context(), userID(c), req.Symbol, req.Shares); err != nil {
		h.reject(c, "buy", err)
		return
	}
	slog.Info("buy executed", "symbol", req.Symbol, "shares", req.Shares, "user_id", userID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// SellPage はGET /sellを処理します。
// 売却フォームの選択肢として保有銘柄の一覧を返します。
func (h *LedgerHandler) SellPage(c *gin.Context) {
	symbols, err := h.ledger.OwnedSymbols(c.Request.Context(), userID(c))
	if err != nil {
		h.reject(c, "sell", err)
		return
	}
	c.JSON(http.StatusOK, dto.SymbolListRes{Symbols: symbols})
}

// Sell はPOST /sellを処理します。成功時はホームへリダイレクトします。
func (h *LedgerHandler) Sell(c *gin.Context) {
	var req dto.TradeReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.ledger.Sell(c.Request.Context(), userID(c), req.Symbol, req.Shares); err != nil {
		h.reject(c, "sell", err)
		return
	}
	slog.Info("sell executed", "symbol", req.Symbol, "shares", req.Shares, "user_id", userID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// CashPage はGET /cashを処理します。
func (h *LedgerHandler) CashPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "cash"})
}

// Deposit はPOST /cashを処理します。成功時はホームへリダイレクトします。
func (h *LedgerHandler) Deposit(c *gin.Context) {
	var req dto.DepositReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.ledger.Deposit(c.Request.Context(), userID(c), req.Cash); err != nil {
		h.reject(c, "deposit", err)
		return
	}
	slog.Info("cash deposited", "amount", req.Cash, "user_id", userID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// QuotePage はGET /quoteを処理します。
// symbolクエリが与えられた場合は相場を返し、なければフォーム相当の応答を返します。
func (h *LedgerHandler) QuotePage(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "quote"})
		return
	}
	h.respondQuote(c, symbol)
}

// Quote はPOST /quoteを処理します。
func (h *LedgerHandler) Quote(c *gin.Context) {
	var req dto.QuoteReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	h.respondQuote(c, req.Symbol)
}

func (h *LedgerHandler) respondQuote(c *gin.Context, symbol string) {
	q, err := h.ledger.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		h.reject(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteRes{Symbol: q.Symbol, Name: q.Name, Price: q.Price})
}

// History はGET /historyを処理します。取引履歴を新しい順に返します。
func (h *LedgerHandler) History(c *gin.Context) {
	entries, err := h.ledger.History(c.Request.Context(), userID(c))
	if err != nil {
		h.reject(c, "history", err)
		return
	}

	out := make([]dto.HistoryEntryRes, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryRes{
			Symbol: e.Symbol,
			Shares: e.Shares,
			Price:  e.Price,
			Time:   e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
