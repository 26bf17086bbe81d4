// Package ui holds the presentation adapters: everything that turns
// governor state changes and switch acknowledgments into something a
// person sees.
package ui

import (
	"fmt"
	"strings"
)

// NotificationTitle heads desktop notifications and the menu.
const NotificationTitle = "CPU Governor Switcher"

// SuccessMessage is the acknowledgment text for a completed switch.
func SuccessMessage(displayName string) string {
	return fmt.Sprintf("%s governor activated successfully.", displayName)
}

// FailureMessage is the acknowledgment text for a failed switch.
func FailureMessage(displayName, diagnostic string) string {
	msg := fmt.Sprintf("Failed to switch to %s governor.", displayName)
	if d := strings.TrimSpace(diagnostic); d != "" {
		msg += " " + d
	}
	return msg
}
