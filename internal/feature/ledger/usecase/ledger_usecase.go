// Package usecase は台帳（ポートフォリオ・売買・入金・履歴）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"finance_backend/internal/feature/ledger/domain/entity"
)

// ledgerUsecase は簿記ロジックを実装します。
// 複数行にまたがる書き込みはすべてLedgerRepository.InTxの中で行い、
// 途中失敗時に部分適用が残らないことを保証します。
type ledgerUsecase struct {
	ledger LedgerRepository
	quotes QuoteRepository
}

// NewLedgerUsecase はledgerUsecaseの新しいインスタンスを生成します。
func NewLedgerUsecase(ledger LedgerRepository, quotes QuoteRepository) *ledgerUsecase {
	return &ledgerUsecase{ledger: ledger, quotes: quotes}
}

// parsePositiveInt はフォーム由来の数値フィールドを検証します。
// 空文字はmissingErr、整数でない・正でない値はinvalidErrになります。
func parsePositiveInt(raw string, missingErr, invalidErr error) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, missingErr
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidErr
	}
	if n <= 0 {
		return 0, invalidErr
	}
	return n, nil
}

// Portfolio はユーザーのポートフォリオを評価して返します。
// 保有銘柄ごとに相場を再取得し、会社価格・保有合計・grand totalを
// 1トランザクションで書き戻します。相場取得に失敗した銘柄は
// キャッシュ済み価格のまま続行します（全体を失敗させない）。
func (u *ledgerUsecase) Portfolio(ctx context.Context, userID uint) (*entity.PortfolioSummary, error) {
	positions, err := u.ledger.PositionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range positions {
		q, err := u.quotes.Lookup(ctx, positions[i].Symbol)
		if err != nil {
			slog.Warn("quote refresh failed, keeping cached price",
				"symbol", positions[i].Symbol, "error", err)
			continue
		}
		positions[i].Price = q.Price
	}
	for i := range positions {
		positions[i].Total = float64(positions[i].Shares) * positions[i].Price
	}

	var summary *entity.PortfolioSummary
	err = u.ledger.InTx(ctx, func(s LedgerStore) error {
		for _, p := range positions {
			if err := s.UpdateCompanyPrice(ctx, p.CompanyID, p.Price); err != nil {
				return err
			}
			if err := s.UpdateHoldingTotal(ctx, p.HoldingID, p.Total); err != nil {
				return err
			}
		}

		acct, err := s.AccountByID(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := s.SumHoldingTotals(ctx, userID)
		if err != nil {
			return err
		}
		grand := acct.Cash + sum
		if err := s.UpdateAccount(ctx, userID, acct.Cash, grand); err != nil {
			return err
		}

		summary = &entity.PortfolioSummary{
			Positions:  positions,
			Cash:       acct.Cash,
			GrandTotal: grand,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Buy は株式を購入します。
// バリデーション順序: symbol必須 → shares必須かつ正の整数 → 相場取得成功 →
// 現金が十分（cost ≤ cash、境界は購入可能）。
// 書き込み（会社upsert・履歴追記・保有upsert・現金減算・grand total更新）は
// 1トランザクションで行います。
func (u *ledgerUsecase) Buy(ctx context.Context, userID uint, symbol, shares string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ErrMissingSymbol
	}
	n, err := parsePositiveInt(shares, ErrMissingShares, ErrInvalidShares)
	if err != nil {
		return err
	}

	q, err := u.quotes.Lookup(ctx, symbol)
	if err != nil {
		return err
	}
	cost := q.Price * float64(n)

	return u.ledger.InTx(ctx, func(s LedgerStore) error {
		acct, err := s.AccountByID(ctx, userID)
		if err != nil {
			return err
		}
		// 境界は包含: cost == cash は購入できる
		if cost > acct.Cash {
			return ErrInsufficientFunds
		}

		company, err := s.UpsertCompany(ctx, q.Symbol, q.Name, q.Price)
		if err != nil {
			return err
		}

		if err := s.AppendHistory(ctx, &entity.HistoryEntry{
			UserID: userID,
			Symbol: q.Symbol,
			Shares: n,
			Price:  q.Price,
		}); err != nil {
			return err
		}

		holding, err := s.HoldingByUserAndCompany(ctx, userID, company.ID)
		switch {
		case errors.Is(err, ErrHoldingNotFound):
			holding = &entity.Holding{
				UserID:    userID,
				CompanyID: company.ID,
				Shares:    n,
				Total:     cost,
			}
		case err != nil:
			return err
		default:
			holding.Shares += n
			holding.Total = float64(holding.Shares) * q.Price
		}
		if err := s.SaveHolding(ctx, holding); err != nil {
			return err
		}

		sum, err := s.SumHoldingTotals(ctx, userID)
		if err != nil {
			return err
		}
		cash := acct.Cash - cost
		return s.UpdateAccount(ctx, userID, cash, cash+sum)
	})
}

// Sell は株式を売却します。
// バリデーション順序: symbol必須 → 銘柄を保有している → shares必須かつ正の整数 →
// 保有数以下。残数が1未満になる場合は保有行を削除します。
func (u *ledgerUsecase) Sell(ctx context.Context, userID uint, symbol, shares string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ErrMissingSymbol
	}

	// 所有チェック（トランザクション内で再検証する）
	company, err := u.ledger.CompanyBySymbol(ctx, symbol)
	if errors.Is(err, ErrCompanyNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return err
	}
	held, err := u.ledger.HoldingByUserAndCompany(ctx, userID, company.ID)
	if errors.Is(err, ErrHoldingNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return err
	}

	n, err := parsePositiveInt(shares, ErrMissingShares, ErrInvalidShares)
	if err != nil {
		return err
	}
	if n > held.Shares {
		return ErrInsufficientHoldings
	}

	q, err := u.quotes.Lookup(ctx, symbol)
	if err != nil {
		return err
	}
	proceeds := float64(n) * q.Price

	return u.ledger.InTx(ctx, func(s LedgerStore) error {
		holding, err := s.HoldingByUserAndCompany(ctx, userID, company.ID)
		if errors.Is(err, ErrHoldingNotFound) {
			return ErrNotOwned
		}
		if err != nil {
			return err
		}
		if n > holding.Shares {
			return ErrInsufficientHoldings
		}

		remaining := holding.Shares - n
		if remaining < 1 {
			if err := s.DeleteHolding(ctx, userID, company.ID); err != nil {
				return err
			}
		} else {
			holding.Shares = remaining
			holding.Total = float64(remaining) * q.Price
			if err := s.SaveHolding(ctx, holding); err != nil {
				return err
			}
		}

		if err := s.UpdateCompanyPrice(ctx, company.ID, q.Price); err != nil {
			return err
		}

		if err := s.AppendHistory(ctx, &entity.HistoryEntry{
			UserID: userID,
			Symbol: q.Symbol,
			Shares: -n,
			Price:  q.Price,
		}); err != nil {
			return err
		}

		acct, err := s.AccountByID(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := s.SumHoldingTotals(ctx, userID)
		if err != nil {
			return err
		}
		cash := acct.Cash + proceeds
		return s.UpdateAccount(ctx, userID, cash, cash+sum)
	})
}

// Deposit は現金を入金します。金額は正の整数です。
// grand totalは cash + Σ保有合計 の不変条件を保つため同時に更新します。
func (u *ledgerUsecase) Deposit(ctx context.Context, userID uint, amount string) error {
	n, err := parsePositiveInt(amount, ErrMissingCash, ErrInvalidCash)
	if err != nil {
		return err
	}

	return u.ledger.InTx(ctx, func(s LedgerStore) error {
		acct, err := s.AccountByID(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := s.SumHoldingTotals(ctx, userID)
		if err != nil {
			return err
		}
		cash := acct.Cash + float64(n)
		return s.UpdateAccount(ctx, userID, cash, cash+sum)
	})
}

// GetQuote は銘柄の現在の相場を返します。
func (u *ledgerUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	return u.quotes.Lookup(ctx, symbol)
}

// History はユーザーの取引履歴を新しい順に返します。
func (u *ledgerUsecase) History(ctx context.Context, userID uint) ([]entity.HistoryEntry, error) {
	return u.ledger.HistoryByUser(ctx, userID)
}

// OwnedSymbols はユーザーが保有する銘柄のシンボル一覧を返します。
// 売却フォームの選択肢に使われます。
func (u *ledgerUsecase) OwnedSymbols(ctx context.Context, userID uint) ([]string, error) {
	positions, err := u.ledger.PositionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}
	return symbols, nil
}
