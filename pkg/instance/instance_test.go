package instance

import "testing"

func TestGetIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.3")
	if got := GetID(); got != "web.3" {
		t.Fatalf("expected web.3, got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("DYNO", "")
	if got := GetID(); got == "" {
		t.Fatalf("expected a non-empty instance id")
	}
}
