package cities

import "testing"

func TestByCode(t *testing.T) {
	city, ok := ByCode("TIA")
	if !ok {
		t.Fatal("TIA should exist")
	}
	if city.Name != "Tirana" {
		t.Errorf("name %q", city.Name)
	}

	if _, ok := ByCode("XXX"); ok {
		t.Error("XXX should not exist")
	}
}

func TestCodesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range All {
		if seen[c.Code] {
			t.Errorf("duplicate code %q", c.Code)
		}
		seen[c.Code] = true
	}
}

func TestPopularRoutesUseKnownCities(t *testing.T) {
	for _, r := range PopularRoutes {
		if !IsValidCode(r.From) {
			t.Errorf("route %s-%s: unknown origin", r.From, r.To)
		}
		if !IsValidCode(r.To) {
			t.Errorf("route %s-%s: unknown destination", r.From, r.To)
		}
		if r.From == r.To {
			t.Errorf("route %s-%s: same city", r.From, r.To)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("DUR"); got != "Durrës" {
		t.Errorf("got %q", got)
	}
	// Unknown codes fall back to the code itself.
	if got := DisplayName("XXX"); got != "XXX" {
		t.Errorf("got %q", got)
	}
}
