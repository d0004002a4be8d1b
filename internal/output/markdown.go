package output

import (
	"fmt"
	"strings"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/format"
	"github.com/padenot/socorro-cli/internal/search"
)

func markdownCrash(s *crash.CrashSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crash %s\n\n", s.CrashID)
	fmt.Fprintf(&b, "- **Signature:** `%s`\n", s.Signature)
	if r := reason(s); r != "" {
		fmt.Fprintf(&b, "- **Reason:** %s\n", r)
	}
	if s.MozCrashReason != nil {
		fmt.Fprintf(&b, "- **MOZ_CRASH reason:** `%s`\n", *s.MozCrashReason)
	}
	if s.AbortMessage != nil {
		fmt.Fprintf(&b, "- **Abort message:** `%s`\n", *s.AbortMessage)
	}
	fmt.Fprintf(&b, "- **Product:** %s %s\n", s.Product, s.Version)
	fmt.Fprintf(&b, "- **Platform:** %s\n", s.Platform)
	if s.AndroidVersion != nil {
		fmt.Fprintf(&b, "- **Android version:** %s\n", *s.AndroidVersion)
	}
	if s.AndroidModel != nil {
		fmt.Fprintf(&b, "- **Android model:** %s\n", *s.AndroidModel)
	}

	if len(s.AllThreads) > 0 {
		for _, t := range s.AllThreads {
			fmt.Fprintf(&b, "\n## %s\n\n", capitalize(threadLabel(t)))
			b.WriteString(markdownFrames(t.Frames))
		}
	} else if len(s.Frames) > 0 {
		title := "Crashing thread"
		if name := deref(s.CrashingThreadName); name != "" {
			title += " (" + name + ")"
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		b.WriteString(markdownFrames(s.Frames))
	}

	if len(s.Modules) > 0 {
		b.WriteString("\n## Modules\n\n")
		b.WriteString(moduleTable(format.Markdown, s.Modules))
		b.WriteString("\n")
	}
	return b.String()
}

func markdownFrames(frames []crash.StackFrame) string {
	if len(frames) == 0 {
		return "_No frames._\n"
	}
	tbl := format.NewTable(format.Markdown)
	tbl.Header("#", "Function", "Location")
	for _, f := range frames {
		loc := FrameLocation(f)
		if loc != "" {
			loc = "`" + loc + "`"
		}
		tbl.Row(f.Frame, "`"+FrameFunction(f)+"`", loc)
	}
	return tbl.String() + "\n"
}

func markdownSearch(resp *search.Response, requested []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search results\n\n%s crashes found, showing %d.\n", format.Count(resp.Total), len(resp.Hits))

	if len(resp.Hits) > 0 {
		tbl := format.NewTable(format.Markdown)
		tbl.Header("Crash ID", "Date", "Product", "Version", "Platform", "Signature")
		for _, h := range resp.Hits {
			tbl.Row(h.UUID, h.Date, h.Product, h.Version, hitPlatform(h), "`"+h.Signature+"`")
		}
		b.WriteString("\n")
		b.WriteString(tbl.String())
		b.WriteString("\n")
	}

	for _, name := range resp.FacetNames(requested) {
		fmt.Fprintf(&b, "\n## By %s\n\n", name)
		b.WriteString(facetTable(format.Markdown, resp.Facets[name], resp.Total))
		b.WriteString("\n")
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
