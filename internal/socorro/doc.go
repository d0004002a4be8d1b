// Package socorro is a client for the Socorro crash-stats API.
//
// Usage:
//
//	client, err := socorro.New(socorro.DefaultBaseURL, token, socorro.WithTimeout(30*time.Second))
//	rec, err := client.GetCrash(ctx, "e7a3c1f0-...-231018")
//	hits, err := client.Search(ctx, search.Params{Product: "Firefox", Days: 7, Limit: 10})
//
// Non-2xx responses come back as *APIError, except 429 which is
// ErrRateLimited. Use IsNotFound and IsRateLimited to inspect errors.
package socorro
