package crash

import (
	"errors"
	"strings"
)

// ErrInvalidCrashID is reserved for rejecting malformed crash IDs.
// ExtractCrashID never returns it; the API reports unknown or malformed IDs
// as not found.
var ErrInvalidCrashID = errors.New("invalid crash ID format")

// ExtractCrashID accepts a bare crash ID or a crash-stats report URL and
// returns the crash ID. For http(s) URLs that is the text after the last
// slash; anything else is returned unchanged.
func ExtractCrashID(input string) string {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return input
	}
	return input[strings.LastIndex(input, "/")+1:]
}
