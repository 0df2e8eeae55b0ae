package datastore

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const historySuffix = "_history"

var (
	// ErrInvalidIdentifier rejects coin codes that cannot safely name a table.
	ErrInvalidIdentifier = errors.New("datastore: invalid coin identifier")
	// ErrInvalidValue rejects NaN and infinite numeric literals.
	ErrInvalidValue = errors.New("datastore: invalid numeric value")

	codePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)
)

// TableName derives the per-coin history table, e.g. "btc" -> "BTC_history".
func TableName(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, code)
	}
	return strings.ToUpper(code) + historySuffix, nil
}

// quoteIdent double-quotes a table name produced by TableName. Codes such as
// 1INCH are not valid bare identifiers.
func quoteIdent(table string) string {
	return `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
}

func formatReal(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// CreateTableStatement creates table with the fixed history schema.
func CreateTableStatement(table string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (price REAL, volume REAL, marketCap REAL, timestamp INTEGER);", quoteIdent(table))
}

// InsertStatement appends one observation to table. tsMillis is epoch ms.
func InsertStatement(table string, price, volume, marketCap float64, tsMillis int64) (string, error) {
	values := make([]string, 0, 4)
	for _, v := range []float64{price, volume, marketCap} {
		lit, err := formatReal(v)
		if err != nil {
			return "", err
		}
		values = append(values, lit)
	}
	values = append(values, strconv.FormatInt(tsMillis, 10))
	return fmt.Sprintf("INSERT INTO %s (price, volume, marketCap, timestamp) VALUES (%s);",
		quoteIdent(table), strings.Join(values, ", ")), nil
}

// DeleteOlderThanStatement removes rows with timestamp before cutoffMillis.
func DeleteOlderThanStatement(table string, cutoffMillis int64) string {
	return fmt.Sprintf("DELETE FROM %s WHERE timestamp < %d;", quoteIdent(table), cutoffMillis)
}

// SelectHistoryStatement returns every row of table, newest first.
func SelectHistoryStatement(table string) string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY timestamp DESC;", quoteIdent(table))
}
