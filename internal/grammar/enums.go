// Package grammar defines the Pali grammatical dimensions, the positional
// form-id encoding shared with the training database, and the pattern
// normalization tables used to group lemmas by declension paradigm.
package grammar

// Domain selects which grammatical dimensions apply to a practice session.
type Domain int

const (
	Declension  Domain = 1 // noun forms: case, gender, number
	Conjugation Domain = 2 // verb forms: tense, person, number, voice
)

func (d Domain) String() string {
	switch d {
	case Declension:
		return "declension"
	case Conjugation:
		return "conjugation"
	}
	return "unknown"
}

// Case is a noun case. Values match the training database encoding.
type Case int

const (
	CaseNone Case = iota
	Nominative
	Accusative
	Instrumental
	Dative
	Ablative
	Genitive
	Locative
	Vocative
)

var caseAbbrevs = [...]string{"", "nom", "acc", "ins", "dat", "abl", "gen", "loc", "voc"}

func (c Case) String() string {
	if c < Nominative || c > Vocative {
		return "?"
	}
	return caseAbbrevs[c]
}

// Gender is a noun gender.
type Gender int

const (
	GenderNone Gender = iota
	Masculine
	Feminine
	Neuter
)

var genderAbbrevs = [...]string{"", "masc", "fem", "nt"}

func (g Gender) String() string {
	if g < Masculine || g > Neuter {
		return "?"
	}
	return genderAbbrevs[g]
}

// Number is grammatical number, shared by nouns and verbs.
type Number int

const (
	NumberNone Number = iota
	Singular
	Plural
)

func (n Number) String() string {
	switch n {
	case Singular:
		return "sg"
	case Plural:
		return "pl"
	}
	return "?"
}

// Person is a verb person.
type Person int

const (
	PersonNone Person = iota
	First
	Second
	Third
)

var personAbbrevs = [...]string{"", "1st", "2nd", "3rd"}

func (p Person) String() string {
	if p < First || p > Third {
		return "?"
	}
	return personAbbrevs[p]
}

// Tense is a verb tense. The traditional moods (imperative, optative) are
// folded in, matching the training database encoding.
type Tense int

const (
	TenseNone Tense = iota
	Present
	Imperative
	Optative
	Future
	Aorist
)

var tenseAbbrevs = [...]string{"", "pr", "imp", "opt", "fut", "aor"}

func (t Tense) String() string {
	if t < Present || t > Aorist {
		return "?"
	}
	return tenseAbbrevs[t]
}

// Voice distinguishes the active (parassapada) and reflexive (attanopada)
// ending sets.
type Voice int

const (
	Active    Voice = 0
	Reflexive Voice = 1
)

func (v Voice) String() string {
	switch v {
	case Active:
		return "act"
	case Reflexive:
		return "refl"
	}
	return "?"
}
