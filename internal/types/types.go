// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import "coinwatch-api/internal/snapshot"

type CoinHistoryReq struct {
	Name string `json:"name,optional"`
}

type CoinsLatestResp struct {
	Data      []snapshot.Coin `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type ErrorResp struct {
	Error string `json:"error"`
}
