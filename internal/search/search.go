// Package search holds the SuperSearch request parameters and response
// shapes. Hits are already flat and display-ready; nothing here is derived.
package search

import "slices"

// Params are the search filters. They are forwarded to the API as given;
// empty strings leave a filter unset.
type Params struct {
	// Signature is sent verbatim, so SuperSearch operators such as a
	// leading "~" (contains) or "=" (exact) work as documented upstream.
	Signature string
	Product   string
	Version   string
	Platform  string
	// Days is the lookback window ending today.
	Days   int
	Limit  int
	Facets []string
	Sort   string
}

// Response is one page of search results.
type Response struct {
	Total  int64                    `json:"total"`
	Hits   []Hit                    `json:"hits"`
	Facets map[string][]FacetBucket `json:"facets"`
}

// Hit is a single matching crash.
type Hit struct {
	UUID      string  `json:"uuid"`
	Date      string  `json:"date"`
	Signature string  `json:"signature"`
	Product   string  `json:"product"`
	Version   string  `json:"version"`
	OSName    *string `json:"os_name"`
}

// FacetBucket is one term of a facet aggregation.
type FacetBucket struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Columns lists the hit fields requested from the API.
var Columns = []string{"uuid", "date", "signature", "product", "version", "os_name"}

// FacetNames returns the facet names of r in the order they were requested,
// followed by any the server added, alphabetically.
func (r *Response) FacetNames(requested []string) []string {
	seen := make(map[string]bool, len(r.Facets))
	names := make([]string, 0, len(r.Facets))
	for _, name := range requested {
		if _, ok := r.Facets[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range r.Facets {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}
