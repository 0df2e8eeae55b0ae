package pricesource

import "context"

// Source lists coins from a remote price API.
type Source interface {
	ListCoins(ctx context.Context, req ListRequest) ([]Coin, error)
}

// ListRequest is the body of a coins/list call.
type ListRequest struct {
	Currency string `json:"currency"`
	Sort     string `json:"sort"`
	Order    string `json:"order"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
	Meta     bool   `json:"meta"`
}

// TopByRank requests the first limit coins ordered by rank, with metadata.
func TopByRank(currency string, limit int) ListRequest {
	return ListRequest{
		Currency: currency,
		Sort:     "rank",
		Order:    "ascending",
		Offset:   0,
		Limit:    limit,
		Meta:     true,
	}
}

// Coin mirrors one element of the coins/list response. Supply, delta and link
// values are frequently null upstream.
type Coin struct {
	Name              string   `json:"name"`
	Code              string   `json:"code"`
	Rank              int      `json:"rank"`
	Rate              float64  `json:"rate"`
	Volume            float64  `json:"volume"`
	Cap               float64  `json:"cap"`
	CirculatingSupply *float64 `json:"circulatingSupply"`
	TotalSupply       *float64 `json:"totalSupply"`
	MaxSupply         *float64 `json:"maxSupply"`
	Delta             *Delta   `json:"delta"`
	Links             *Links   `json:"links"`
}

// Delta holds percentage-style change multipliers over standard windows.
type Delta struct {
	Hour  *float64 `json:"hour"`
	Day   *float64 `json:"day"`
	Week  *float64 `json:"week"`
	Month *float64 `json:"month"`
	Year  *float64 `json:"year"`
}

// Links holds project URLs.
type Links struct {
	Website    *string `json:"website"`
	Whitepaper *string `json:"whitepaper"`
}
