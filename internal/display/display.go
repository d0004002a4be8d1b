// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in compact and Markdown output. Keep raw codes for
// JSON fields and comparisons.
package display

import "strings"

// --- Crash reasons ---

var crashReasons = map[string]string{
	"EXCEPTION_ACCESS_VIOLATION_READ":  "read from invalid address",
	"EXCEPTION_ACCESS_VIOLATION_WRITE": "write to invalid address",
	"EXCEPTION_ACCESS_VIOLATION_EXEC":  "execute at invalid address",
	"EXCEPTION_BREAKPOINT":             "breakpoint hit",
	"EXCEPTION_ILLEGAL_INSTRUCTION":    "illegal instruction",
	"EXCEPTION_PRIV_INSTRUCTION":       "privileged instruction",
	"EXCEPTION_STACK_OVERFLOW":         "stack overflow",
	"EXCEPTION_INT_DIVIDE_BY_ZERO":     "integer divide by zero",
	"EXCEPTION_IN_PAGE_ERROR_READ":     "page-in read failed",
	"EXCEPTION_IN_PAGE_ERROR_WRITE":    "page-in write failed",
	"EXCEPTION_HEAP_CORRUPTION":        "heap corruption",
	"STATUS_FATAL_APP_EXIT":            "fatal application exit",
	"STATUS_STACK_BUFFER_OVERRUN":      "stack buffer overrun",
	"SIGSEGV":                          "segmentation fault",
	"SIGBUS":                           "bus error",
	"SIGABRT":                          "abort",
	"SIGILL":                           "illegal instruction",
	"SIGFPE":                           "floating-point exception",
	"SIGTRAP":                          "trap",
	"SIGSYS":                           "bad system call",
	"EXC_BAD_ACCESS":                   "bad memory access",
	"EXC_BAD_INSTRUCTION":              "illegal instruction",
	"EXC_BREAKPOINT":                   "breakpoint hit",
	"EXC_CRASH":                        "abnormal exit",
	"EXC_RESOURCE":                     "resource limit exceeded",
}

// CrashReason returns a short description of a crash reason code.
// Composite codes such as "SIGSEGV / SEGV_MAPERR" are looked up by their
// leading part. Unknown codes yield "".
func CrashReason(code string) string {
	if desc, ok := crashReasons[code]; ok {
		return desc
	}
	base, _, _ := strings.Cut(code, "/")
	return crashReasons[strings.TrimSpace(base)]
}

// CrashReasonWithCode returns "SIGSEGV / SEGV_MAPERR (segmentation fault)"
// format, or the code alone when it is unknown.
func CrashReasonWithCode(code string) string {
	if desc := CrashReason(code); desc != "" {
		return code + " (" + desc + ")"
	}
	return code
}

// --- Symbols ---

// Symbols describes the symbol status of a module.
func Symbols(loaded, missing bool) string {
	switch {
	case missing:
		return "missing"
	case loaded:
		return "loaded"
	default:
		return "-"
	}
}
