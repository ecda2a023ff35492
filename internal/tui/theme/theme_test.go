package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("tarifa-light"); got.Name != "tarifa-light" {
		t.Fatalf("ByName(tarifa-light) = %s", got.Name)
	}
	if got := ByName("nope"); got.Name != TarifaDark.Name {
		t.Fatalf("ByName(nope) = %s, want %s", got.Name, TarifaDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(TarifaDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %s, want terminal", Active.Name)
	}
}

func TestNamesAndExists(t *testing.T) {
	names := Names()
	if len(names) != len(All) || names[0] != "tarifa-dark" {
		t.Fatalf("Names() = %v", names)
	}
	for _, n := range names {
		if !Exists(n) {
			t.Errorf("Exists(%q) = false", n)
		}
	}
	if Exists("") {
		t.Error(`Exists("") = true`)
	}
}
