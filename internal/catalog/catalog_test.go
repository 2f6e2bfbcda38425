package catalog

import "testing"

func TestCatalogShape(t *testing.T) {
	if Count() != 5 {
		t.Fatalf("Count() = %d, want 5", Count())
	}
	if MaxTotal() != 500 {
		t.Fatalf("MaxTotal() = %d, want 500", MaxTotal())
	}

	for _, s := range All() {
		if s.CreditWeight != 4 {
			t.Errorf("subject %s credit weight = %d, want 4", s.Code, s.CreditWeight)
		}
		if s.DisplayName == "" {
			t.Errorf("subject %s has empty display name", s.Code)
		}
	}
}

func TestByCode(t *testing.T) {
	for _, code := range []string{CodeDSA, CodeADA, CodeDBMS, CodeJAVA, CodeOS} {
		s, ok := ByCode(code)
		if !ok || s.Code != code {
			t.Errorf("ByCode(%s) = (%+v, %v), want a hit", code, s, ok)
		}
		if !IsValid(code) {
			t.Errorf("IsValid(%s) = false, want true", code)
		}
	}

	for _, code := range []string{"", "MATH", "dsa", "DSA "} {
		if IsValid(code) {
			t.Errorf("IsValid(%q) = true, want false", code)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].DisplayName = "mutated"
	if All()[0].DisplayName == "mutated" {
		t.Fatal("All() leaked the internal slice")
	}
}

func TestCodesOrder(t *testing.T) {
	want := []string{CodeDSA, CodeADA, CodeDBMS, CodeJAVA, CodeOS}
	got := Codes()
	if len(got) != len(want) {
		t.Fatalf("Codes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Codes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
