package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneymagic/internal/core"
)

const dateLayout = "2006-01-02"

// decodeJSON reads the request body into v, rejecting unknown fields and
// trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// filterFromQuery builds the ledger filter from the optional query
// parameters month, from, to, account_ids and types.
func filterFromQuery(r *http.Request) (core.TransactionFilter, error) {
	var f core.TransactionFilter
	q := r.URL.Query()

	f.Month = q.Get("month")

	if s := q.Get("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if s := q.Get("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, err
		}
		f.To = t
	}
	if s := q.Get("account_ids"); s != "" {
		for _, part := range strings.Split(s, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return f, fmt.Errorf("invalid account id %q", part)
			}
			f.AccountIDs = append(f.AccountIDs, id)
		}
	}
	if s := q.Get("types"); s != "" {
		for _, part := range strings.Split(s, ",") {
			f.Types = append(f.Types, core.TransactionType(strings.TrimSpace(part)))
		}
	}
	return f, nil
}
