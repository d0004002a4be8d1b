// Package crash models Socorro processed crash records and derives
// display-ready summaries from them.
//
// A record mirrors the ProcessedCrash API response: every field but the
// crash ID may be missing, and the nested json_dump payload may carry the
// thread list, crash info and crashing-thread index that the top level
// omits. Summarize resolves those fallbacks once so renderers never have to.
package crash

import (
	"encoding/json"
	"fmt"
)

// ProcessedCrash is a processed crash record as returned by the
// ProcessedCrash endpoint.
type ProcessedCrash struct {
	UUID      string  `json:"uuid"`
	Signature *string `json:"signature"`
	Product   *string `json:"product"`
	Version   *string `json:"version"`
	OSName    *string `json:"os_name"`
	OSVersion *string `json:"os_version"`

	CrashInfo      *CrashInfo `json:"crash_info"`
	MozCrashReason *string    `json:"moz_crash_reason"`
	AbortMessage   *string    `json:"abort_message"`

	AndroidModel   *string `json:"android_model"`
	AndroidVersion *string `json:"android_version"`

	CrashingThread *int `json:"crashing_thread"`
	// Threads is nil when the record carries no thread list. An empty,
	// non-nil list is a present (if useless) list.
	Threads []Thread `json:"threads"`
	// JSONDump is the minidump-stackwalk output, kept undecoded. It is only
	// consulted as a fallback source, see Summarize.
	JSONDump json.RawMessage `json:"json_dump"`

	raw json.RawMessage
}

// CrashInfo is the crash_info block of a record or of its json_dump.
type CrashInfo struct {
	Type           *string `json:"type"`
	Address        *string `json:"address"`
	CrashingThread *int    `json:"crashing_thread"`
}

// Thread is one thread's stack.
type Thread struct {
	Thread     *int         `json:"thread"`
	ThreadName *string      `json:"thread_name"`
	Frames     []StackFrame `json:"frames"`
}

// StackFrame is a single, possibly partially symbolicated, stack frame.
type StackFrame struct {
	Frame    int     `json:"frame"`
	Function *string `json:"function"`
	File     *string `json:"file"`
	Line     *int    `json:"line"`
	Module   *string `json:"module"`
	Offset   *string `json:"offset"`
}

// Module is a loaded module from the json_dump module list.
type Module struct {
	Filename       string `json:"filename"`
	Version        string `json:"version,omitempty"`
	DebugFile      string `json:"debug_file,omitempty"`
	DebugID        string `json:"debug_id,omitempty"`
	CodeID         string `json:"code_id,omitempty"`
	BaseAddr       string `json:"base_addr,omitempty"`
	EndAddr        string `json:"end_addr,omitempty"`
	LoadedSymbols  bool   `json:"loaded_symbols,omitempty"`
	MissingSymbols bool   `json:"missing_symbols,omitempty"`
}

// Decode parses a ProcessedCrash response body. The body is retained and
// available through Raw.
func Decode(data []byte) (*ProcessedCrash, error) {
	var c ProcessedCrash
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode processed crash: %w", err)
	}
	c.raw = append(json.RawMessage(nil), data...)
	return &c, nil
}

// Raw returns the response body the record was decoded from, or nil when
// the record was built in memory.
func (c *ProcessedCrash) Raw() json.RawMessage {
	return c.raw
}

// dumpField decodes json_dump[key] into dst. It reports false when the
// payload is missing, is not an object, lacks the key, or the value does
// not fit dst.
func (c *ProcessedCrash) dumpField(key string, dst any) bool {
	if len(c.JSONDump) == 0 {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.JSONDump, &fields); err != nil {
		return false
	}
	raw, ok := fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *ProcessedCrash) dumpCrashingThread() (int, bool) {
	// Decoding into uint rejects negative and fractional values.
	var idx *uint
	if !c.dumpField("crashing_thread", &idx) || idx == nil {
		return 0, false
	}
	return int(*idx), true
}

func (c *ProcessedCrash) dumpThreads() ([]Thread, bool) {
	var threads []Thread
	if !c.dumpField("threads", &threads) || threads == nil {
		return nil, false
	}
	return threads, true
}

func (c *ProcessedCrash) dumpCrashInfo() (*CrashInfo, bool) {
	var ci *CrashInfo
	if !c.dumpField("crash_info", &ci) || ci == nil {
		return nil, false
	}
	return ci, true
}

func (c *ProcessedCrash) dumpModules() ([]Module, bool) {
	var modules []Module
	if !c.dumpField("modules", &modules) || modules == nil {
		return nil, false
	}
	return modules, true
}
