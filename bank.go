package tourbook

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// bankRateURL is the bank rate board: a JSON list of records, one per quoted
// currency, each carrying at least {"currency": ..., "buy": ...}.
//
//	[
//	  {"currency": "USD", "buy": 31.505, "sell": 32.175},
//	  {"currency": "JPY", "buy": 4.7542, "sell": 4.8918},
//	  ...
//	]
//
// The JPY quote is expressed in JPY per TWD and must be inverted; the USD
// buy quote is already TWD per USD and is used directly.
const bankRateURL = "https://rate.bot.com.tw/xrt/quote/day?fmt=json"

// FetchRateTable performs one best-effort fetch of the bank rate board and
// builds a complete table from it. The parse fails closed: if any required
// quote is missing or unreadable, an error is returned and the caller keeps
// whatever table it already has.
func FetchRateTable(client *http.Client) (RateTable, error) {
	if client == nil {
		client = http.DefaultClient
	}
	var jobj any
	if err := jwget(client, bankRateURL, &jobj); err != nil {
		return RateTable{}, fmt.Errorf("error fetching bank rates: %w", err)
	}
	return parseRateBoard(jobj, time.Now())
}

// parseRateBoard extracts the JPY and USD buy quotes from the decoded rate
// board and builds the table. Quotes are scanned linearly: the board lists a
// dozen currencies and only two matter here.
func parseRateBoard(jobj any, now time.Time) (RateTable, error) {
	jrecords, err := jsonpath.Get("$[*]", jobj)
	if err != nil {
		return RateTable{}, fmt.Errorf("error reading rate board: %w", err)
	}
	records, ok := jrecords.([]any)
	if !ok {
		return RateTable{}, fmt.Errorf("rate board is not a list: %T", jrecords)
	}

	quotes := make(map[string]float64)
	for _, rec := range records {
		jcur, err := jsonpath.Get("$.currency", rec)
		if err != nil {
			continue // record without a currency code, skip
		}
		code, ok := jcur.(string)
		if !ok {
			continue
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "JPY" && code != "USD" {
			continue
		}
		jbuy, err := jsonpath.Get("$.buy", rec)
		if err != nil {
			return RateTable{}, fmt.Errorf("quote %s has no buy rate", code)
		}
		buy, err := asFloat(jbuy)
		if err != nil {
			return RateTable{}, fmt.Errorf("cannot read %s buy rate: %w", code, err)
		}
		if buy <= 0 || math.IsNaN(buy) || math.IsInf(buy, 0) {
			return RateTable{}, fmt.Errorf("%s buy rate %v is not a usable quote", code, buy)
		}
		quotes[code] = buy
	}

	jpy, ok := quotes["JPY"]
	if !ok {
		return RateTable{}, fmt.Errorf("rate board has no JPY quote")
	}
	usd, ok := quotes["USD"]
	if !ok {
		return RateTable{}, fmt.Errorf("rate board has no USD quote")
	}

	return NewRateTable(
		// The board quotes JPY per TWD, the table wants TWD per JPY.
		Rate{Currency: "JPY", Rate: decimal.NewFromInt(1).Div(decimal.NewFromFloat(jpy)), LastUpdated: now},
		Rate{Currency: "USD", Rate: decimal.NewFromFloat(usd), LastUpdated: now},
	), nil
}

// asFloat reads a JSON value that should be a number but sometimes arrives
// as a formatted string ("31.505" or even "4,7542").
func asFloat(jval any) (float64, error) {
	if v, ok := jval.(float64); ok {
		return v, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return math.NaN(), fmt.Errorf("neither a float nor a string: %T", jval)
	}
	sval = strings.ReplaceAll(sval, ",", ".")
	sval = strings.ReplaceAll(sval, " ", "")
	v, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("invalid quote string %q: %w", sval, err)
	}
	return v, nil
}
