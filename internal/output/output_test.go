package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/search"
)

func ptr[T any](v T) *T { return &v }

func sampleSummary() *crash.CrashSummary {
	return &crash.CrashSummary{
		CrashID:            "abc-123",
		Signature:          "mozilla::dom::Foo::Bar",
		Reason:             ptr("SIGSEGV / SEGV_MAPERR"),
		Address:            ptr("0x0"),
		MozCrashReason:     ptr("MOZ_RELEASE_ASSERT(x)"),
		Product:            "Firefox",
		Version:            "120.0",
		Platform:           "Linux",
		CrashingThreadName: ptr("Main"),
		Frames: []crash.StackFrame{
			{Frame: 0, Function: ptr("mozilla::dom::Foo::Bar"), File: ptr("hg:hg.mozilla.org/mozilla-central:dom/foo/Foo.cpp:abcdef"), Line: ptr(42)},
			{Frame: 1, Module: ptr("libxul.so"), Offset: ptr("0x1234")},
			{Frame: 2},
		},
		AllThreads: []crash.ThreadSummary{},
	}
}

func sampleResponse() *search.Response {
	return &search.Response{
		Total: 1234,
		Hits: []search.Hit{
			{UUID: "id-1", Date: "2024-01-15T10:20:30.123+00:00", Signature: "OOM | small", Product: "Firefox", Version: "121.0", OSName: ptr("Windows NT")},
			{UUID: "id-2", Date: "2024-01-14T08:00:00+00:00", Signature: "Foo::Bar", Product: "Firefox", Version: "121.0"},
		},
		Facets: map[string][]search.FacetBucket{
			"version":  {{Term: "121.0", Count: 1000}, {Term: "120.0", Count: 234}},
			"platform": {{Term: "Windows NT", Count: 1234}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"compact", Compact, false},
		{"JSON", JSON, false},
		{" markdown ", Markdown, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormat_FlagValue(t *testing.T) {
	f := Compact
	if err := f.Set("markdown"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if f.String() != "markdown" {
		t.Errorf("String() = %q", f.String())
	}
	if err := f.Set("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if f != Markdown {
		t.Errorf("failed Set changed value to %q", f)
	}
	if f.Type() != "format" {
		t.Errorf("Type() = %q", f.Type())
	}
}

func TestFrameFunction(t *testing.T) {
	cases := []struct {
		name  string
		frame crash.StackFrame
		want  string
	}{
		{"symbolicated", crash.StackFrame{Function: ptr("main"), Module: ptr("a.so"), Offset: ptr("0x1")}, "main"},
		{"empty function", crash.StackFrame{Function: ptr(""), Module: ptr("a.so"), Offset: ptr("0x1")}, "a.so+0x1"},
		{"module offset", crash.StackFrame{Module: ptr("a.so"), Offset: ptr("0x1")}, "a.so+0x1"},
		{"offset only", crash.StackFrame{Offset: ptr("0x1")}, "0x1"},
		{"nothing", crash.StackFrame{}, "???"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FrameFunction(tc.frame); got != tc.want {
				t.Errorf("FrameFunction = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFrameLocation(t *testing.T) {
	cases := []struct {
		name  string
		frame crash.StackFrame
		want  string
	}{
		{"file and line", crash.StackFrame{File: ptr("a.cpp"), Line: ptr(3)}, "a.cpp:3"},
		{"file only", crash.StackFrame{File: ptr("a.cpp")}, "a.cpp"},
		{"hg path", crash.StackFrame{File: ptr("hg:hg.mozilla.org/mozilla-central:dom/a.cpp:ff00"), Line: ptr(7)}, "dom/a.cpp:7"},
		{"git path", crash.StackFrame{File: ptr("git:github.com/rust-lang/rust:library/core/src/panicking.rs:abc")}, "library/core/src/panicking.rs"},
		{"odd vcs path", crash.StackFrame{File: ptr("hg:weird")}, "hg:weird"},
		{"no file", crash.StackFrame{Line: ptr(3)}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FrameLocation(tc.frame); got != tc.want {
				t.Errorf("FrameLocation = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCrash_Compact(t *testing.T) {
	out, err := Crash(Compact, sampleSummary())
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	for _, want := range []string{
		"CRASH abc-123\n",
		"sig: mozilla::dom::Foo::Bar\n",
		"reason: SIGSEGV / SEGV_MAPERR (segmentation fault) @ 0x0\n",
		"moz_reason: MOZ_RELEASE_ASSERT(x)\n",
		"product: Firefox 120.0 on Linux\n",
		"stack[Main]:\n",
		"  #0 mozilla::dom::Foo::Bar @ dom/foo/Foo.cpp:42\n",
		"  #1 libxul.so+0x1234\n",
		"  #2 ???\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("compact output missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"abort:", "android:", "modules:"} {
		if strings.Contains(out, absent) {
			t.Errorf("compact output has %q:\n%s", absent, out)
		}
	}
}

func TestCrash_CompactMinimal(t *testing.T) {
	s := &crash.CrashSummary{
		CrashID:    "x",
		Signature:  crash.Unknown,
		Product:    crash.Unknown,
		Version:    crash.Unknown,
		Platform:   crash.Unknown,
		Frames:     []crash.StackFrame{},
		AllThreads: []crash.ThreadSummary{},
	}
	out, err := Crash(Compact, s)
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	want := "CRASH x\nsig: Unknown\nproduct: Unknown Unknown on Unknown\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCrash_CompactAllThreads(t *testing.T) {
	s := sampleSummary()
	s.AllThreads = []crash.ThreadSummary{
		{ThreadIndex: 0, ThreadName: ptr("Main"), Frames: s.Frames[:1], IsCrashing: true},
		{ThreadIndex: 1, Frames: []crash.StackFrame{}},
	}
	out, err := Crash(Compact, s)
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	for _, want := range []string{"thread 0 (Main) [crashing]:\n", "thread 1:\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "stack[") {
		t.Errorf("all-threads output repeats the crashing stack:\n%s", out)
	}
}

func TestCrash_Modules(t *testing.T) {
	s := sampleSummary()
	s.Modules = []crash.Module{
		{Filename: "libxul.so", Version: "120.0", DebugID: "ABCDEF0", LoadedSymbols: true},
		{Filename: "libc.so.6", MissingSymbols: true},
	}
	for _, f := range []Format{Compact, Markdown} {
		out, err := Crash(f, s)
		if err != nil {
			t.Fatalf("Crash(%s): %v", f, err)
		}
		for _, want := range []string{"libxul.so", "ABCDEF0", "loaded", "libc.so.6", "missing"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s output missing %q:\n%s", f, want, out)
			}
		}
	}
}

func TestCrash_Markdown(t *testing.T) {
	s := sampleSummary()
	s.AndroidVersion = ptr("14")
	s.AndroidModel = ptr("Pixel 7")
	out, err := Crash(Markdown, s)
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	for _, want := range []string{
		"# Crash abc-123\n",
		"- **Signature:** `mozilla::dom::Foo::Bar`\n",
		"- **Reason:** SIGSEGV / SEGV_MAPERR (segmentation fault) @ 0x0\n",
		"- **Platform:** Linux\n",
		"- **Android version:** 14\n",
		"- **Android model:** Pixel 7\n",
		"## Crashing thread (Main)\n",
		"`dom/foo/Foo.cpp:42`",
		"`libxul.so+0x1234`",
		"| #",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestCrash_MarkdownAllThreadsEmptyStack(t *testing.T) {
	s := sampleSummary()
	s.AllThreads = []crash.ThreadSummary{{ThreadIndex: 3, Frames: []crash.StackFrame{}}}
	out, err := Crash(Markdown, s)
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	if !strings.Contains(out, "## Thread 3\n\n_No frames._\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCrash_JSONIsSummary(t *testing.T) {
	s := sampleSummary()
	out, err := Crash(JSON, s)
	if err != nil {
		t.Fatalf("Crash: %v", err)
	}
	var got crash.CrashSummary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if diff := cmp.Diff(*s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCrash_UnknownFormat(t *testing.T) {
	if _, err := Crash(Format("xml"), sampleSummary()); err == nil {
		t.Error("expected error")
	}
	if _, err := Search(Format("xml"), sampleResponse()); err == nil {
		t.Error("expected error")
	}
}

func TestCrashJSON_KeepsUnknownFields(t *testing.T) {
	body := `{"uuid":"abc","signature":"S","addons_checked":true,"json_dump":{"modules":[]}}`
	rec, err := crash.Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := CrashJSON(rec)
	if err != nil {
		t.Fatalf("CrashJSON: %v", err)
	}
	if !strings.Contains(out, `"addons_checked": true`) {
		t.Errorf("unknown field dropped:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") || !strings.Contains(out, "\n  \"uuid\": \"abc\"") {
		t.Errorf("output not re-indented:\n%s", out)
	}
}

func TestCrashJSON_InMemoryRecord(t *testing.T) {
	rec := &crash.ProcessedCrash{UUID: "abc", Signature: ptr("S")}
	out, err := CrashJSON(rec)
	if err != nil {
		t.Fatalf("CrashJSON: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if got["uuid"] != "abc" || got["signature"] != "S" {
		t.Errorf("unexpected fields: %v", got)
	}
}

func TestSearch_Compact(t *testing.T) {
	out, err := Search(Compact, sampleResponse(), "version")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, want := range []string{
		"FOUND 1,234 crashes (showing 2)\n",
		"id-1", "2024-01-15 10:20", "Windows NT", "OOM | small",
		"id-2", "Unknown",
		"BY version:", "1,000", "81.0%",
		"BY platform:", "100.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("compact search missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "BY version:") > strings.Index(out, "BY platform:") {
		t.Errorf("requested facet should come first:\n%s", out)
	}
}

func TestSearch_CompactEmpty(t *testing.T) {
	resp := &search.Response{Hits: []search.Hit{}, Facets: map[string][]search.FacetBucket{}}
	out, err := Search(Compact, resp)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out != "FOUND 0 crashes (showing 0)\n" {
		t.Errorf("got %q", out)
	}
}

func TestSearch_Markdown(t *testing.T) {
	out, err := Search(Markdown, sampleResponse())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, want := range []string{
		"# Search results\n",
		"1,234 crashes found, showing 2.",
		"id-1",
		"2024-01-15T10:20:30.123+00:00",
		"## By platform\n",
		"## By version\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown search missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "## By platform") > strings.Index(out, "## By version") {
		t.Errorf("unrequested facets should be alphabetical:\n%s", out)
	}
}

func TestSearch_JSON(t *testing.T) {
	want := sampleResponse()
	out, err := Search(JSON, want)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var got search.Response
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
