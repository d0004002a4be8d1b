package output

import (
	"fmt"
	"strings"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/display"
	"github.com/padenot/socorro-cli/internal/format"
	"github.com/padenot/socorro-cli/internal/search"
)

// signatureWidth caps the signature column of compact search tables.
const signatureWidth = 80

func compactCrash(s *crash.CrashSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CRASH %s\n", s.CrashID)
	fmt.Fprintf(&b, "sig: %s\n", s.Signature)
	if r := reason(s); r != "" {
		fmt.Fprintf(&b, "reason: %s\n", r)
	}
	if s.MozCrashReason != nil {
		fmt.Fprintf(&b, "moz_reason: %s\n", *s.MozCrashReason)
	}
	if s.AbortMessage != nil {
		fmt.Fprintf(&b, "abort: %s\n", *s.AbortMessage)
	}
	fmt.Fprintf(&b, "product: %s %s on %s\n", s.Product, s.Version, s.Platform)
	if s.AndroidVersion != nil || s.AndroidModel != nil {
		fmt.Fprintf(&b, "android: %s\n", strings.TrimSpace(deref(s.AndroidVersion)+" "+deref(s.AndroidModel)))
	}

	if len(s.AllThreads) > 0 {
		for _, t := range s.AllThreads {
			fmt.Fprintf(&b, "\n%s:\n", threadLabel(t))
			writeCompactFrames(&b, t.Frames)
		}
	} else if len(s.Frames) > 0 {
		name := deref(s.CrashingThreadName)
		if name == "" {
			name = "crashing thread"
		}
		fmt.Fprintf(&b, "\nstack[%s]:\n", name)
		writeCompactFrames(&b, s.Frames)
	}

	if len(s.Modules) > 0 {
		b.WriteString("\nmodules:\n")
		b.WriteString(moduleTable(format.Plain, s.Modules))
		b.WriteString("\n")
	}
	return b.String()
}

func writeCompactFrames(b *strings.Builder, frames []crash.StackFrame) {
	for _, f := range frames {
		fmt.Fprintf(b, "  #%d %s", f.Frame, FrameFunction(f))
		if loc := FrameLocation(f); loc != "" {
			fmt.Fprintf(b, " @ %s", loc)
		}
		b.WriteString("\n")
	}
}

func moduleTable(m format.Mode, modules []crash.Module) string {
	tbl := format.NewTable(m)
	tbl.Header("Module", "Version", "Debug ID", "Symbols")
	for _, mod := range modules {
		tbl.Row(mod.Filename, mod.Version, mod.DebugID, display.Symbols(mod.LoadedSymbols, mod.MissingSymbols))
	}
	return tbl.String()
}

func compactSearch(resp *search.Response, requested []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FOUND %s crashes (showing %d)\n", format.Count(resp.Total), len(resp.Hits))

	if len(resp.Hits) > 0 {
		tbl := format.NewTable(format.Plain)
		tbl.Header("ID", "Date", "Product", "Version", "Platform", "Signature")
		tbl.Columns(format.ColumnConfig{Number: 6, MaxWidth: signatureWidth})
		for _, h := range resp.Hits {
			tbl.Row(h.UUID, shortDate(h.Date), h.Product, h.Version, hitPlatform(h), h.Signature)
		}
		b.WriteString("\n")
		b.WriteString(tbl.String())
		b.WriteString("\n")
	}

	for _, name := range resp.FacetNames(requested) {
		fmt.Fprintf(&b, "\nBY %s:\n", name)
		b.WriteString(facetTable(format.Plain, resp.Facets[name], resp.Total))
		b.WriteString("\n")
	}
	return b.String()
}

func facetTable(m format.Mode, buckets []search.FacetBucket, total int64) string {
	tbl := format.NewTable(m)
	tbl.Header("Term", "Count", "Share")
	tbl.Columns(
		format.ColumnConfig{Number: 1, MaxWidth: signatureWidth},
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
	)
	for _, fb := range buckets {
		tbl.Row(fb.Term, format.Count(fb.Count), format.Share(fb.Count, total))
	}
	return tbl.String()
}

func hitPlatform(h search.Hit) string {
	if h.OSName == nil {
		return crash.Unknown
	}
	return *h.OSName
}
