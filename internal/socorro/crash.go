package socorro

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/padenot/socorro-cli/internal/crash"
)

// GetCrash fetches the processed crash with the given ID.
// Unknown IDs, and IDs the API rejects as malformed, yield an error
// wrapping ErrNotFound.
func (c *Client) GetCrash(ctx context.Context, crashID string) (*crash.ProcessedCrash, error) {
	const operation = "get crash"
	u := fmt.Sprintf("%s/ProcessedCrash/?%s", c.baseURL, url.Values{"crash_id": {crashID}}.Encode())

	body, err := c.get(ctx, u, operation)
	if err != nil {
		// The API answers 400 for IDs that are not crash IDs at all.
		if HasStatusCode(err, http.StatusNotFound) || HasStatusCode(err, http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, crashID)
		}
		return nil, err
	}

	rec, err := crash.Decode(body)
	if err != nil {
		return nil, &ParseError{Operation: operation, Err: err}
	}
	return rec, nil
}
