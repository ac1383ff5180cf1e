package grammar

import "strings"

// Inflection pattern handling. Lemmas carry a pattern name such as "a masc"
// or "bhavati pr". Irregular and variant patterns ("a2 masc", "a masc east",
// "rāja masc") are treated as members of a parent base paradigm: a variant
// is eligible whenever its base pattern is enabled, and declension practice
// categories are keyed by the base pattern.

// irregularNounParents maps lexeme-named irregular noun patterns to the base
// paradigm they are grouped under.
var irregularNounParents = map[string]string{
	"rāja masc":       "a masc",
	"brahma masc":     "a masc",
	"addha masc":      "a masc",
	"yuva masc":       "a masc",
	"go masc":         "o masc",
	"jantu masc":      "u masc",
	"anta masc":       "a masc",
	"arahant masc":    "a masc",
	"bhavant masc":    "a masc",
	"santa masc":      "a masc",
	"kamma nt":        "a nt",
	"parisā fem":      "ā fem",
	"jāti fem":        "i fem",
	"ratti fem":       "i fem",
	"nadī fem":        "ī fem",
	"pokkharaṇī fem":  "ī fem",
	"mātar fem":       "ar fem",
}

// irregularVerbParents maps lexeme-named irregular present-tense patterns to
// the regular template they substitute for.
var irregularVerbParents = map[string]string{
	"hoti pr":    "ati pr",
	"atthi pr":   "ati pr",
	"natthi pr":  "ati pr",
	"karoti pr":  "ati pr",
	"brūti pr":   "ati pr",
	"dakkhati pr": "ati pr",
	"dammi pr":   "ati pr",
	"hanati pr":  "ati pr",
	"kubbati pr": "ati pr",
	"eti pr":     "ati pr",
}

// IsPluralOnly reports whether a noun pattern lacks singular forms.
func IsPluralOnly(pattern string) bool {
	return strings.HasSuffix(strings.TrimSpace(pattern), " pl")
}

// NounBasePattern normalizes a noun pattern name to its parent base
// paradigm. Regional ("east"), explicit irregular ("irreg"), plural-only
// ("pl") and numbered variants ("a2") all collapse onto the base; unknown
// patterns are returned stripped of variant markers.
func NounBasePattern(pattern string) string {
	p := normalizeVariant(pattern)
	if base, ok := irregularNounParents[p]; ok {
		return base
	}
	return p
}

// VerbBasePattern normalizes a verb pattern name to its template paradigm.
func VerbBasePattern(pattern string) string {
	p := normalizeVariant(pattern)
	if base, ok := irregularVerbParents[p]; ok {
		return base
	}
	return p
}

// normalizeVariant strips the variant markers a pattern name may carry:
// trailing "east"/"irreg"/"pl" qualifiers and digit suffixes on any token
// ("a2 masc" -> "a masc", "eti pr 2" -> "eti pr").
func normalizeVariant(pattern string) string {
	fields := strings.Fields(pattern)
	out := fields[:0]
	for _, f := range fields {
		switch f {
		case "east", "irreg", "pl":
			continue
		}
		f = strings.TrimRight(f, "0123456789")
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
