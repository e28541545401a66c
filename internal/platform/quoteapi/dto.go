package quoteapi

// quoteResponse はTwelve Data /quote エンドポイントのワイヤ形式です。
// エラー時はstatus/code/messageが入ります。
type quoteResponse struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Close   string `json:"close"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
