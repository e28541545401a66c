// Package dto はledgerフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// TradeReq は/buyと/sellのリクエストを表します。
// Sharesは「欠落」と「不正な値」を区別するため文字列のまま受け取り、
// usecase側で順序付きで検証します。
type TradeReq struct {
	Symbol string `form:"symbol" json:"symbol"`
	Shares string `form:"shares" json:"shares"`
}

// DepositReq は/cashのリクエストを表します。
type DepositReq struct {
	Cash string `form:"cash" json:"cash"`
}

// QuoteReq は/quoteのリクエストを表します。
type QuoteReq struct {
	Symbol string `form:"symbol" json:"symbol"`
}
