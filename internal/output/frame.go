package output

import (
	"strconv"
	"strings"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/display"
)

const unsymbolicated = "???"

// FrameFunction names a frame by its function, or by module+offset when
// the frame was not symbolicated.
func FrameFunction(f crash.StackFrame) string {
	switch {
	case f.Function != nil && *f.Function != "":
		return *f.Function
	case f.Module != nil && f.Offset != nil:
		return *f.Module + "+" + *f.Offset
	case f.Offset != nil:
		return *f.Offset
	default:
		return unsymbolicated
	}
}

// FrameLocation is "file:line", "file", or "" when the frame has no source.
func FrameLocation(f crash.StackFrame) string {
	if f.File == nil || *f.File == "" {
		return ""
	}
	file := sourcePath(*f.File)
	if f.Line != nil {
		return file + ":" + strconv.Itoa(*f.Line)
	}
	return file
}

// sourcePath strips the VCS prefix and revision from symbol-server paths
// such as "hg:hg.mozilla.org/mozilla-central:dom/media/X.cpp:abcdef".
func sourcePath(file string) string {
	if !strings.HasPrefix(file, "hg:") && !strings.HasPrefix(file, "git:") {
		return file
	}
	parts := strings.Split(file, ":")
	if len(parts) != 4 {
		return file
	}
	return parts[2]
}

// reason renders the crash reason with its description and address.
func reason(s *crash.CrashSummary) string {
	if s.Reason == nil {
		return ""
	}
	r := display.CrashReasonWithCode(*s.Reason)
	if s.Address != nil && *s.Address != "" {
		r += " @ " + *s.Address
	}
	return r
}

func threadLabel(t crash.ThreadSummary) string {
	label := "thread " + strconv.Itoa(t.ThreadIndex)
	if t.ThreadName != nil && *t.ThreadName != "" {
		label += " (" + *t.ThreadName + ")"
	}
	if t.IsCrashing {
		label += " [crashing]"
	}
	return label
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// shortDate trims an ISO timestamp to minutes: "2024-01-15 10:20".
func shortDate(d string) string {
	if len(d) >= 16 && d[10] == 'T' {
		return d[:10] + " " + d[11:16]
	}
	return d
}
