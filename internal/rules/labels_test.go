package rules

import "testing"

func TestIsBlockerLabel(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  bool
	}{
		{"blocker", true},
		{"Blocked", true},
		{"status::blocked", true},
		{"release-blocker", true},
		{"bug", false},
		{"", false},
	} {
		if got := IsBlockerLabel(tc.label); got != tc.want {
			t.Errorf("IsBlockerLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestIsTypeLabel(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  bool
	}{
		{"bug", true},
		{"Bug", true},
		{"feature", true},
		{"enhancement", true},
		{"type::chore", true},
		{"TYPE::chore", true},
		{"team::payments", false},
		{"p1", false},
	} {
		if got := IsTypeLabel(tc.label); got != tc.want {
			t.Errorf("IsTypeLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestIsPriorityLabel(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  bool
	}{
		{"p1", true},
		{"P2", true},
		{"p3", true},
		{"priority::high", true},
		{"high-priority", true},
		{"priority::p1", true},
		{"p4", false},
		{"p2p", false},
		{"apollo", false},
	} {
		if got := IsPriorityLabel(tc.label); got != tc.want {
			t.Errorf("IsPriorityLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestIsHighPriority(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  bool
	}{
		{"p1", true},
		{"P2", true},
		{"priority::p2", true},
		{"priority::critical", true},
		{"high", true},
		{"p3", false},
		{"priority::low", false},
	} {
		if got := IsHighPriority(tc.label); got != tc.want {
			t.Errorf("IsHighPriority(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestTeamSlug(t *testing.T) {
	for _, tc := range []struct {
		label string
		slug  string
		ok    bool
	}{
		{"team::payments", "payments", true},
		{"Team::Payments", "payments", true},
		{"team::core-infra", "core-infra", true},
		{"team::", "", false},
		{"team::-bad", "", false},
		{"initiative::payments", "", false},
		{"payments", "", false},
	} {
		slug, ok := TeamSlug(tc.label)
		if slug != tc.slug || ok != tc.ok {
			t.Errorf("TeamSlug(%q) = (%q, %v), want (%q, %v)", tc.label, slug, ok, tc.slug, tc.ok)
		}
	}
}

func TestInitiativeSlug(t *testing.T) {
	slug, ok := InitiativeSlug("initiative::checkout-v2")
	if !ok || slug != "checkout-v2" {
		t.Errorf("InitiativeSlug = (%q, %v), want (checkout-v2, true)", slug, ok)
	}
	if _, ok := InitiativeSlug("team::checkout-v2"); ok {
		t.Error("team label should not match initiative grammar")
	}
}

func TestPriorityToken(t *testing.T) {
	for _, tc := range []struct {
		labels []string
		want   string
	}{
		{[]string{"p2", "p1"}, "p1"},
		{[]string{"priority::p3"}, "p3"},
		{[]string{"bug", "team::x"}, ""},
		{nil, ""},
	} {
		if got := PriorityToken(tc.labels); got != tc.want {
			t.Errorf("PriorityToken(%v) = %q, want %q", tc.labels, got, tc.want)
		}
	}
}

func TestHumanizeSlug(t *testing.T) {
	for _, tc := range []struct {
		slug string
		want string
	}{
		{"payments", "Payments"},
		{"checkout-v2", "Checkout V2"},
		{"core-infra-platform", "Core Infra Platform"},
	} {
		if got := HumanizeSlug(tc.slug); got != tc.want {
			t.Errorf("HumanizeSlug(%q) = %q, want %q", tc.slug, got, tc.want)
		}
	}
}
