package socorro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/padenot/socorro-cli/internal/search"
)

// Search runs a SuperSearch query and returns the first page of hits.
func (c *Client) Search(ctx context.Context, p search.Params) (*search.Response, error) {
	const operation = "search"
	u := fmt.Sprintf("%s/SuperSearch/?%s", c.baseURL, searchQuery(p, c.now()).Encode())

	body, err := c.get(ctx, u, operation)
	if err != nil {
		return nil, err
	}

	var res search.Response
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &ParseError{Operation: operation, Err: err}
	}
	if res.Hits == nil {
		res.Hits = []search.Hit{}
	}
	if res.Facets == nil {
		res.Facets = map[string][]search.FacetBucket{}
	}
	return &res, nil
}

// searchQuery maps Params onto SuperSearch query parameters. The lookback
// window becomes a lower bound on the crash date, counted in UTC days
// from now.
func searchQuery(p search.Params, now time.Time) url.Values {
	q := url.Values{}
	if p.Signature != "" {
		q.Set("signature", p.Signature)
	}
	if p.Product != "" {
		q.Set("product", p.Product)
	}
	if p.Version != "" {
		q.Set("version", p.Version)
	}
	if p.Platform != "" {
		q.Set("os_name", p.Platform)
	}
	since := now.UTC().AddDate(0, 0, -p.Days)
	q.Set("date", ">="+since.Format(time.DateOnly))
	q.Set("_results_number", strconv.Itoa(p.Limit))
	for _, f := range p.Facets {
		q.Add("_facets", f)
	}
	if p.Sort != "" {
		q.Set("_sort", p.Sort)
	}
	for _, col := range search.Columns {
		q.Add("_columns", col)
	}
	return q
}
