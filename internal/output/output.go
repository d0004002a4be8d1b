// Package output renders crash summaries and search results as compact
// text, JSON or Markdown.
//
// Renderers are pure: they take a summary or response and return the text
// to print. Fallback resolution has already happened in crash.Summarize, so
// nothing here inspects the raw record except CrashJSON.
package output

import (
	"fmt"
	"strings"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/search"
)

// Format selects a renderer.
type Format string

const (
	Compact  Format = "compact"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// Formats lists the accepted format names, in help order.
var Formats = []Format{Compact, JSON, Markdown}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Compact, JSON, Markdown:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want compact, json or markdown)", s)
}

// String implements pflag.Value.
func (f *Format) String() string { return string(*f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// Crash renders a summary. JSON renders the summary itself; callers wanting
// the untouched record use CrashJSON.
func Crash(f Format, s *crash.CrashSummary) (string, error) {
	switch f {
	case Compact:
		return compactCrash(s), nil
	case Markdown:
		return markdownCrash(s), nil
	case JSON:
		return marshalIndent(s)
	}
	return "", fmt.Errorf("render crash: unknown format %q", f)
}

// Search renders a page of search results. Facets are listed in the
// requested order, then any others the server returned.
func Search(f Format, resp *search.Response, requestedFacets ...string) (string, error) {
	switch f {
	case Compact:
		return compactSearch(resp, requestedFacets), nil
	case Markdown:
		return markdownSearch(resp, requestedFacets), nil
	case JSON:
		return SearchJSON(resp)
	}
	return "", fmt.Errorf("render search: unknown format %q", f)
}
