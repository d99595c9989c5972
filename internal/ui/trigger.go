package ui

import "encoding/json"

// ToastEvent is the client event name the layout script listens for.
const ToastEvent = "showToast"

// TriggerHeader encodes t as an HX-Trigger header value. A closed toast yields "".
func TriggerHeader(t Toast) string {
	if !t.Open || t.Message == "" {
		return ""
	}
	b, err := json.Marshal(map[string]Toast{ToastEvent: t})
	if err != nil {
		return ""
	}
	return string(b)
}
