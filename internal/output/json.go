package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/search"
)

// CrashJSON renders the full record. The response body is re-indented
// as received so fields the record model does not know survive; a record
// built in memory is marshaled instead.
func CrashJSON(rec *crash.ProcessedCrash) (string, error) {
	if raw := rec.Raw(); len(raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err == nil {
			buf.WriteByte('\n')
			return buf.String(), nil
		}
	}
	return marshalIndent(rec)
}

// SearchJSON renders a search response.
func SearchJSON(resp *search.Response) (string, error) {
	return marshalIndent(resp)
}

func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data) + "\n", nil
}
