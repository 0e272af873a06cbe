package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Flame-Codes/jersey-hub-direct/internal/catalog"
	"github.com/shopspring/decimal"
)

// maxBodySize caps request bodies; the largest is a cart checkout customer
const maxBodySize = 64 << 10

var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// parseFilter reads the catalog view query: category, q, minPrice,
// maxPrice and sort
func parseFilter(q url.Values) (catalog.Filter, error) {
	sort, err := catalog.ParseSort(q.Get("sort"))
	if err != nil {
		return catalog.Filter{}, err
	}

	f := catalog.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   q.Get("q"),
		Sort:     sort,
	}

	if f.MinPrice, err = parsePrice(q, "minPrice"); err != nil {
		return catalog.Filter{}, err
	}
	if f.MaxPrice, err = parsePrice(q, "maxPrice"); err != nil {
		return catalog.Filter{}, err
	}
	return f, nil
}

func parsePrice(q url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return &d, nil
}
