package grammar

import "testing"

func TestNounBasePattern(t *testing.T) {
	cases := map[string]string{
		"a masc":         "a masc",
		"a2 masc":        "a masc",
		"a masc east":    "a masc",
		"a masc pl":      "a masc",
		"a nt irreg":     "a nt",
		"rāja masc":      "a masc",
		"kamma nt":       "a nt",
		"nadī fem":       "ī fem",
		"mātar fem":      "ar fem",
		"ī masc pl":      "ī masc",
		"u masc pl":      "u masc",
		"ar2 masc":       "ar masc",
		"ū fem":          "ū fem",
	}
	for in, want := range cases {
		if got := NounBasePattern(in); got != want {
			t.Errorf("NounBasePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVerbBasePattern(t *testing.T) {
	cases := map[string]string{
		"ati pr":   "ati pr",
		"hoti pr":  "ati pr",
		"eti pr 2": "ati pr",
		"oti pr":   "oti pr",
	}
	for in, want := range cases {
		if got := VerbBasePattern(in); got != want {
			t.Errorf("VerbBasePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsPluralOnly(t *testing.T) {
	if !IsPluralOnly("a masc pl") {
		t.Error("IsPluralOnly(\"a masc pl\") = false, want true")
	}
	if IsPluralOnly("a masc") {
		t.Error("IsPluralOnly(\"a masc\") = true, want false")
	}
}
