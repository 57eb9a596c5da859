package utils

import (
	"log"
	"strings"
)

// LogEvent writes one business-event line. Keep message to identifiers
// and counts; document content does not belong in logs.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("event module=%s action=%s req=%s %s", module, action, rid, message)
}
