package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
	"finance_backend/internal/shared/ratelimiter"
)

// TwelveDataQuotes はQuoteRepositoryインターフェースのTwelve Data実装です。
// プロバイダーの無料枠を超えないよう、すべての呼び出しはレートリミッターを通ります。
type TwelveDataQuotes struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataQuotesがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*TwelveDataQuotes)(nil)

// NewTwelveDataQuotes はTwelveDataQuotesの新しいインスタンスを生成します。
func NewTwelveDataQuotes(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataQuotes {
	return &TwelveDataQuotes{cfg: cfg, client: client, limiter: limiter}
}

// Lookup は Twelve Data API からシンボルの現在値を取得し、entity.Quote として返します。
// 未知のシンボルは usecase.ErrSymbolNotFound になります。
func (t *TwelveDataQuotes) Lookup(ctx context.Context, symbol string) (*entity.Quote, error) {
	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	// クエリの追加
	q.Set("symbol", symbol)
	q.Set("apikey", t.cfg.APIKey)

	// URLの生成
	u := fmt.Sprintf("%s/quote?%s", t.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトの作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエスト
	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONを構造体にデコード
	var body quoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" || body.Close == "" {
		// プロバイダーがシンボルを解決できなかった
		return nil, usecase.ErrSymbolNotFound
	}

	// 現在値
	price, err := strconv.ParseFloat(body.Close, 64)
	if err != nil {
		return nil, fmt.Errorf("parse close %q: %w", body.Close, err)
	}

	return &entity.Quote{
		Symbol: strings.ToUpper(body.Symbol),
		Name:   body.Name,
		Price:  price,
	}, nil
}
