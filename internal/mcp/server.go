// Package mcp exposes crash lookup and search as Model Context Protocol
// tools so agents can query crash-stats without shelling out.
package mcp

import (
	"context"
	"fmt"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/display"
	"github.com/padenot/socorro-cli/internal/logging"
	"github.com/padenot/socorro-cli/internal/output"
	"github.com/padenot/socorro-cli/internal/search"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CrashSource fetches crash records and search results.
// *socorro.Client satisfies it.
type CrashSource interface {
	GetCrash(ctx context.Context, crashID string) (*crash.ProcessedCrash, error)
	Search(ctx context.Context, p search.Params) (*search.Response, error)
}

// Defaults fill tool arguments the caller leaves out.
type Defaults struct {
	Depth   int
	Product string
	Days    int
	Limit   int
	Sort    string
}

// DefaultDefaults mirrors the command-line defaults.
func DefaultDefaults() Defaults {
	return Defaults{Depth: 10, Product: "Firefox", Days: 7, Limit: 10, Sort: "-date"}
}

// Server wraps the MCP SDK server around a CrashSource.
type Server struct {
	MCPServer *sdkmcp.Server

	source   CrashSource
	defaults Defaults
}

// NewServer creates an MCP server with the crash tools registered.
func NewServer(source CrashSource, defaults Defaults, version string) *Server {
	s := &Server{source: source, defaults: defaults}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "socorro-cli", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_crash",
		Description: "Fetch a processed crash by ID or crash-stats URL and return its summary: signature, reason, platform and the crashing thread's stack.",
	}, s.handleGetCrash)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_crashes",
		Description: "Search crash reports with SuperSearch. Returns matching crashes and optional facet aggregations.",
	}, s.handleSearchCrashes)
}

// --- Tool input/output types ---

type getCrashInput struct {
	CrashID    string `json:"crash_id" jsonschema:"crash ID or crash-stats report URL"`
	Depth      *int   `json:"depth,omitempty" jsonschema:"maximum frames per thread (default 10)"`
	AllThreads bool   `json:"all_threads,omitempty" jsonschema:"include every thread's stack, useful for deadlocks"`
	Modules    bool   `json:"modules,omitempty" jsonschema:"include the loaded module list"`
}

type frameOutput struct {
	Frame    int    `json:"frame"`
	Function string `json:"function"`
	Location string `json:"location,omitempty"`
}

type threadOutput struct {
	Index    int           `json:"index"`
	Name     string        `json:"name,omitempty"`
	Crashing bool          `json:"crashing"`
	Frames   []frameOutput `json:"frames"`
}

type moduleOutput struct {
	Filename string `json:"filename"`
	Version  string `json:"version,omitempty"`
	DebugID  string `json:"debug_id,omitempty"`
	Symbols  string `json:"symbols"`
}

type getCrashOutput struct {
	CrashID            string         `json:"crash_id"`
	Signature          string         `json:"signature"`
	Reason             string         `json:"reason,omitempty"`
	ReasonDescription  string         `json:"reason_description,omitempty"`
	Address            string         `json:"address,omitempty"`
	MozCrashReason     string         `json:"moz_crash_reason,omitempty"`
	AbortMessage       string         `json:"abort_message,omitempty"`
	Product            string         `json:"product"`
	Version            string         `json:"version"`
	Platform           string         `json:"platform"`
	AndroidVersion     string         `json:"android_version,omitempty"`
	AndroidModel       string         `json:"android_model,omitempty"`
	CrashingThreadName string         `json:"crashing_thread_name,omitempty"`
	Frames             []frameOutput  `json:"frames"`
	Threads            []threadOutput `json:"threads,omitempty"`
	Modules            []moduleOutput `json:"modules,omitempty"`
}

type searchCrashesInput struct {
	Signature string   `json:"signature,omitempty" jsonschema:"signature filter, sent verbatim (prefix ~ for contains)"`
	Product   string   `json:"product,omitempty" jsonschema:"product name (default Firefox)"`
	Version   string   `json:"version,omitempty" jsonschema:"product version"`
	Platform  string   `json:"platform,omitempty" jsonschema:"OS name, e.g. Windows NT, Linux, Mac OS X, Android"`
	Days      int      `json:"days,omitempty" jsonschema:"lookback window in days (default 7)"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum hits to return (default 10)"`
	Facets    []string `json:"facets,omitempty" jsonschema:"fields to aggregate, e.g. signature, version, platform"`
	Sort      string   `json:"sort,omitempty" jsonschema:"sort field, prefix - for descending (default -date)"`
}

type hitOutput struct {
	UUID      string `json:"uuid"`
	Date      string `json:"date"`
	Signature string `json:"signature"`
	Product   string `json:"product"`
	Version   string `json:"version"`
	OSName    string `json:"os_name,omitempty"`
}

type searchCrashesOutput struct {
	Total  int64                           `json:"total"`
	Hits   []hitOutput                     `json:"hits"`
	Facets map[string][]search.FacetBucket `json:"facets"`
}

// --- Tool handlers ---

func (s *Server) handleGetCrash(ctx context.Context, _ *sdkmcp.CallToolRequest, input getCrashInput) (*sdkmcp.CallToolResult, getCrashOutput, error) {
	id := crash.ExtractCrashID(input.CrashID)
	if id == "" {
		return nil, getCrashOutput{}, fmt.Errorf("get_crash: crash_id is required")
	}
	depth := s.defaults.Depth
	if input.Depth != nil {
		if *input.Depth < 0 {
			return nil, getCrashOutput{}, fmt.Errorf("get_crash: depth must be non-negative, got %d", *input.Depth)
		}
		depth = *input.Depth
	}

	logging.New("mcp").Info("get_crash", "crash_id", id, "depth", depth, "all_threads", input.AllThreads)

	rec, err := s.source.GetCrash(ctx, id)
	if err != nil {
		return nil, getCrashOutput{}, fmt.Errorf("get_crash: %w", err)
	}
	var opts []crash.SummaryOption
	if input.Modules {
		opts = append(opts, crash.WithModules())
	}
	summary := rec.Summarize(depth, input.AllThreads, opts...)
	return nil, crashOutput(&summary), nil
}

func (s *Server) handleSearchCrashes(ctx context.Context, _ *sdkmcp.CallToolRequest, input searchCrashesInput) (*sdkmcp.CallToolResult, searchCrashesOutput, error) {
	p := search.Params{
		Signature: input.Signature,
		Product:   orDefault(input.Product, s.defaults.Product),
		Version:   input.Version,
		Platform:  input.Platform,
		Days:      input.Days,
		Limit:     input.Limit,
		Facets:    input.Facets,
		Sort:      orDefault(input.Sort, s.defaults.Sort),
	}
	if p.Days <= 0 {
		p.Days = s.defaults.Days
	}
	if p.Limit <= 0 {
		p.Limit = s.defaults.Limit
	}

	logging.New("mcp").Info("search_crashes", "signature", p.Signature, "product", p.Product, "days", p.Days)

	resp, err := s.source.Search(ctx, p)
	if err != nil {
		return nil, searchCrashesOutput{}, fmt.Errorf("search_crashes: %w", err)
	}
	return nil, searchOutput(resp), nil
}

func crashOutput(s *crash.CrashSummary) getCrashOutput {
	out := getCrashOutput{
		CrashID:            s.CrashID,
		Signature:          s.Signature,
		Reason:             deref(s.Reason),
		Address:            deref(s.Address),
		MozCrashReason:     deref(s.MozCrashReason),
		AbortMessage:       deref(s.AbortMessage),
		Product:            s.Product,
		Version:            s.Version,
		Platform:           s.Platform,
		AndroidVersion:     deref(s.AndroidVersion),
		AndroidModel:       deref(s.AndroidModel),
		CrashingThreadName: deref(s.CrashingThreadName),
		Frames:             framesOutput(s.Frames),
	}
	if out.Reason != "" {
		out.ReasonDescription = display.CrashReason(out.Reason)
	}
	for _, t := range s.AllThreads {
		out.Threads = append(out.Threads, threadOutput{
			Index:    t.ThreadIndex,
			Name:     deref(t.ThreadName),
			Crashing: t.IsCrashing,
			Frames:   framesOutput(t.Frames),
		})
	}
	for _, m := range s.Modules {
		out.Modules = append(out.Modules, moduleOutput{
			Filename: m.Filename,
			Version:  m.Version,
			DebugID:  m.DebugID,
			Symbols:  display.Symbols(m.LoadedSymbols, m.MissingSymbols),
		})
	}
	return out
}

func framesOutput(frames []crash.StackFrame) []frameOutput {
	out := make([]frameOutput, 0, len(frames))
	for _, f := range frames {
		out = append(out, frameOutput{
			Frame:    f.Frame,
			Function: output.FrameFunction(f),
			Location: output.FrameLocation(f),
		})
	}
	return out
}

func searchOutput(resp *search.Response) searchCrashesOutput {
	out := searchCrashesOutput{
		Total:  resp.Total,
		Hits:   make([]hitOutput, 0, len(resp.Hits)),
		Facets: resp.Facets,
	}
	if out.Facets == nil {
		out.Facets = map[string][]search.FacetBucket{}
	}
	for _, h := range resp.Hits {
		out.Hits = append(out.Hits, hitOutput{
			UUID:      h.UUID,
			Date:      h.Date,
			Signature: h.Signature,
			Product:   h.Product,
			Version:   h.Version,
			OSName:    deref(h.OSName),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
