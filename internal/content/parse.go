package content

import (
	"encoding/json"
	"strings"
)

type replyOutput struct {
	Text          string `json:"text"`
	VisualKeyword string `json:"visual_keyword"`
}

// ParseReply unwraps a tutoring reply. Output shaped as
// {"text": ..., "visual_keyword": ...} is decoded, optionally inside a
// markdown code fence. Anything else, including JSON with empty text, is
// used verbatim as the reply text with no visual keyword.
func ParseReply(raw string) Reply {
	trimmed := strings.TrimSpace(raw)

	var out replyOutput
	if err := json.Unmarshal([]byte(stripCodeFence(trimmed)), &out); err == nil {
		if text := strings.TrimSpace(out.Text); text != "" {
			return Reply{
				Text:          text,
				VisualKeyword: strings.TrimSpace(out.VisualKeyword),
			}
		}
	}
	return Reply{Text: trimmed}
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(strings.TrimSpace(s[:i]), "{") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
