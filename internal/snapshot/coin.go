package snapshot

import "coinwatch-api/pkg/pricesource"

// Coin is one tracked coin as of the latest refresh. Pointer fields are
// nullable and serialise as JSON null when the price source omits them.
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
	DeltaHour         *float64 `json:"delta_hour"`
	DeltaDay          *float64 `json:"delta_day"`
	DeltaWeek         *float64 `json:"delta_week"`
	Website           *string  `json:"website"`
	Whitepaper        *string  `json:"whitepaper"`
}

// FromSource maps a raw price source record. Missing delta or links objects
// leave the corresponding fields nil.
func FromSource(raw pricesource.Coin) Coin {
	coin := Coin{
		Name:              raw.Name,
		Code:              raw.Code,
		Rank:              raw.Rank,
		Rate:              raw.Rate,
		Volume:            raw.Volume,
		Cap:               raw.Cap,
		CirculatingSupply: raw.CirculatingSupply,
		TotalSupply:       raw.TotalSupply,
		MaxSupply:         raw.MaxSupply,
	}
	if raw.Delta != nil {
		coin.DeltaHour = raw.Delta.Hour
		coin.DeltaDay = raw.Delta.Day
		coin.DeltaWeek = raw.Delta.Week
	}
	if raw.Links != nil {
		coin.Website = raw.Links.Website
		coin.Whitepaper = raw.Links.Whitepaper
	}
	return coin
}

// FromSourceList maps a full price source response in order.
func FromSourceList(raw []pricesource.Coin) []Coin {
	coins := make([]Coin, 0, len(raw))
	for _, r := range raw {
		coins = append(coins, FromSource(r))
	}
	return coins
}
