// Package ui renders severities and statuses with ANSI-256 colors for
// terminal output.
package ui

import "fmt"

// ANSI256 color codes.
const (
	colorHigh    = 203 // red
	colorMedium  = 214 // orange
	colorLow     = 250 // light gray
	colorGood    = 78  // green
	colorWarning = 214 // orange
	colorMuted   = 245 // medium gray
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderSeverity colors a severity token (high/medium/low).
func RenderSeverity(s string) string {
	switch s {
	case "high", "critical":
		return render(colorHigh, s)
	case "medium", "warning":
		return render(colorMedium, s)
	case "low":
		return render(colorLow, s)
	}
	return s
}

// RenderStatus colors a derived status token (initiative, capacity, or
// forecast status).
func RenderStatus(s string) string {
	switch s {
	case "complete", "on-track", "healthy":
		return render(colorGood, s)
	case "in-progress", "at-capacity", "warning":
		return render(colorWarning, s)
	case "blocked", "at-risk", "overloaded":
		return render(colorHigh, s)
	case "not-started", "no-data":
		return render(colorMuted, s)
	}
	return s
}

// RenderScore colors a bounded score: green at or above good, orange at or
// above warn, red below.
func RenderScore(score, warn, good int) string {
	s := fmt.Sprintf("%d", score)
	switch {
	case score >= good:
		return render(colorGood, s)
	case score >= warn:
		return render(colorWarning, s)
	}
	return render(colorHigh, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
