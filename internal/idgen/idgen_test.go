package idgen

import (
	"regexp"
	"testing"
)

func TestGenerate_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^rn-[a-zA-Z0-9]{10}$`)
	for i := 0; i < 100; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("Generate() = %q, want match for %q", id, pattern)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate run ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
