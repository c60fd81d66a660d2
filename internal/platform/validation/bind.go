package validation

import (
	"bytes"
	"encoding/json"

	"blog_backend/internal/shared/apperr"
)

// InvalidBodyMessage is reported when the request body cannot be decoded at all.
const InvalidBodyMessage = "Invalid request body"

// ErrInvalidBody is returned when JSON binding fails. Fields whose type is
// checked by a rule are bound as json.RawMessage so their failures are
// collected with the others instead.
var ErrInvalidBody = apperr.Validation(InvalidBodyMessage)

// Present reports whether a lazily bound field was sent with a non-null value.
func Present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// StringList decodes raw as a JSON array of strings.
func StringList(raw json.RawMessage) ([]string, bool) {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}
