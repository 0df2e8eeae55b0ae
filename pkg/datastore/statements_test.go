package datastore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "upper", code: "BTC", want: "BTC_history"},
		{name: "lower is normalised", code: "btc", want: "BTC_history"},
		{name: "digits first", code: "1INCH", want: "1INCH_history"},
		{name: "underscore prefix", code: "____MYS", want: "____MYS_history"},
		{name: "trimmed", code: "  eth ", want: "ETH_history"},
		{name: "empty", code: "", wantErr: true},
		{name: "injection", code: "BTC; DROP TABLE x", wantErr: true},
		{name: "quote", code: `BT"C`, wantErr: true},
		{name: "dash", code: "BTC-USD", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TableName(tt.code)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStatements(t *testing.T) {
	require.Equal(t,
		`CREATE TABLE IF NOT EXISTS "BTC_history" (price REAL, volume REAL, marketCap REAL, timestamp INTEGER);`,
		CreateTableStatement("BTC_history"))

	insert, err := InsertStatement("BTC_history", 5612345.12, 1e-7, 0, 1700000000000)
	require.NoError(t, err)
	require.Equal(t,
		`INSERT INTO "BTC_history" (price, volume, marketCap, timestamp) VALUES (5612345.12, 0.0000001, 0, 1700000000000);`,
		insert)

	require.Equal(t,
		`DELETE FROM "ETH_history" WHERE timestamp < 1699395200000;`,
		DeleteOlderThanStatement("ETH_history", 1699395200000))

	require.Equal(t,
		`SELECT * FROM "BTC_history" ORDER BY timestamp DESC;`,
		SelectHistoryStatement("BTC_history"))
}

func TestInsertStatementRejectsNonFinite(t *testing.T) {
	_, err := InsertStatement("BTC_history", math.NaN(), 1, 1, 1)
	require.ErrorIs(t, err, ErrInvalidValue)
	_, err = InsertStatement("BTC_history", 1, math.Inf(1), 1, 1)
	require.ErrorIs(t, err, ErrInvalidValue)
}
