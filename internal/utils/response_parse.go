package utils

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrEmptyReply is returned when a model answered with nothing usable.
var ErrEmptyReply = goerr.New("empty reply")

// NormalizeReply trims raw model output. Models prompted for JSON sometimes
// wrap the answer as {"reply": "..."}; the inner text is returned in that case.
func NormalizeReply(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if start, end := strings.Index(clean, "{"), strings.LastIndex(clean, "}"); start == 0 && end > start {
		if reply, ok := unwrapReply(clean[start : end+1]); ok {
			clean = reply
		}
	}

	if clean == "" {
		return "", goerr.Wrap(ErrEmptyReply, "failed to normalize reply", goerr.V("raw", raw))
	}
	return clean, nil
}

// unwrapReply returns the string "reply" field of a JSON object. Objects
// without it are not treated as wrapped replies.
func unwrapReply(data string) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return "", false
	}
	raw, ok := fields["reply"]
	if !ok {
		return "", false
	}
	var reply string
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", false
	}
	return strings.TrimSpace(reply), true
}
