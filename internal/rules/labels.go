// Package rules defines the quality-criteria registry, the label grammar,
// and the configuration resolver that merges defaults with user overrides.
package rules

import (
	"regexp"
	"strings"
)

// Label scope prefixes recognized by the grammar.
const (
	teamPrefix       = "team::"
	initiativePrefix = "initiative::"
	typePrefix       = "type::"
	priorityPrefix   = "priority::"
)

var (
	priorityToken = regexp.MustCompile(`^p[1-3]$`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// IsBlockerLabel reports whether a label marks the issue as blocked.
func IsBlockerLabel(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "blocker") || strings.Contains(l, "blocked")
}

// IsTypeLabel reports whether a label classifies the issue type.
func IsTypeLabel(label string) bool {
	l := strings.ToLower(label)
	if strings.HasPrefix(l, typePrefix) {
		return true
	}
	return strings.Contains(l, "bug") || strings.Contains(l, "feature") || strings.Contains(l, "enhancement")
}

// IsPriorityLabel reports whether a label carries a priority marker.
// Bare p1-p3 tokens must stand alone or follow a scope ("priority::p2");
// substrings like "p2p" do not match.
func IsPriorityLabel(label string) bool {
	l := strings.ToLower(label)
	if strings.Contains(l, "priority") {
		return true
	}
	return priorityToken.MatchString(scopeTail(l))
}

// IsHighPriority reports whether a priority label resolves to P1/P2 or an
// explicit high/critical marker.
func IsHighPriority(label string) bool {
	l := strings.ToLower(label)
	if strings.Contains(l, "high") || strings.Contains(l, "critical") {
		return true
	}
	tail := scopeTail(l)
	return tail == "p1" || tail == "p2"
}

// TeamSlug extracts the slug from a team::<slug> label.
func TeamSlug(label string) (string, bool) {
	return scopedSlug(label, teamPrefix)
}

// InitiativeSlug extracts the slug from an initiative::<slug> label.
func InitiativeSlug(label string) (string, bool) {
	return scopedSlug(label, initiativePrefix)
}

// PriorityToken returns the strongest priority token (p1 > p2 > p3) found
// in the labels, or "" when none carries one.
func PriorityToken(labels []string) string {
	best := ""
	for _, label := range labels {
		l := strings.ToLower(label)
		tail := scopeTail(l)
		if !priorityToken.MatchString(tail) {
			continue
		}
		if best == "" || tail < best {
			best = tail
		}
	}
	return best
}

// HumanizeSlug renders a slug as a display name: "payments-platform"
// becomes "Payments Platform".
func HumanizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func scopedSlug(label, prefix string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if !strings.HasPrefix(l, prefix) {
		return "", false
	}
	slug := l[len(prefix):]
	if !slugPattern.MatchString(slug) {
		return "", false
	}
	return slug, true
}

// scopeTail returns the segment after the last "::", or the whole label
// when it is unscoped.
func scopeTail(label string) string {
	if idx := strings.LastIndex(label, "::"); idx >= 0 {
		return label[idx+2:]
	}
	return label
}
