package grammar

import (
	"fmt"
)

// FormID uniquely identifies one inflected form of one lemma. It is a pure
// positional decimal encoding, so the lemma id and the grammatical
// combination can be recovered without a database lookup.
//
// Declension (9 digits): lemma(5) case(1) gender(1) number(1) ending(1)
// Conjugation (10 digits): lemma(5) tense(1) person(1) number(1) voice(1) ending(1)
type FormID int

// Lemma id ranges. Noun and verb lemmas live in disjoint ranges so a form id
// also implies its domain.
const (
	NounLemmaStart = 10001
	NounLemmaMax   = 69999
	VerbLemmaStart = 70001
	VerbLemmaMax   = 99999
)

// DeclensionForm is a fully decoded noun form id.
type DeclensionForm struct {
	LemmaID     int
	Case        Case
	Gender      Gender
	Number      Number
	EndingIndex int
}

// ConjugationForm is a fully decoded verb form id.
type ConjugationForm struct {
	LemmaID     int
	Tense       Tense
	Person      Person
	Number      Number
	Voice       Voice
	EndingIndex int
}

// EncodeDeclension builds the form id for a noun form.
func EncodeDeclension(f DeclensionForm) FormID {
	return FormID(f.LemmaID*10_000 + int(f.Case)*1_000 + int(f.Gender)*100 + int(f.Number)*10 + f.EndingIndex)
}

// EncodeConjugation builds the form id for a verb form.
func EncodeConjugation(f ConjugationForm) FormID {
	return FormID(f.LemmaID*100_000 + int(f.Tense)*10_000 + int(f.Person)*1_000 + int(f.Number)*100 + int(f.Voice)*10 + f.EndingIndex)
}

// DecodeDeclension decodes a noun form id, validating every digit range.
func DecodeDeclension(id FormID) (DeclensionForm, error) {
	n := int(id)
	f := DeclensionForm{
		LemmaID:     n / 10_000,
		Case:        Case(n / 1_000 % 10),
		Gender:      Gender(n / 100 % 10),
		Number:      Number(n / 10 % 10),
		EndingIndex: n % 10,
	}
	switch {
	case f.LemmaID < NounLemmaStart || f.LemmaID > NounLemmaMax:
		return DeclensionForm{}, fmt.Errorf("form id %d: noun lemma id %d out of range", id, f.LemmaID)
	case f.Case < Nominative || f.Case > Vocative:
		return DeclensionForm{}, fmt.Errorf("form id %d: invalid case digit", id)
	case f.Gender < Masculine || f.Gender > Neuter:
		return DeclensionForm{}, fmt.Errorf("form id %d: invalid gender digit", id)
	case f.Number < Singular || f.Number > Plural:
		return DeclensionForm{}, fmt.Errorf("form id %d: invalid number digit", id)
	case f.EndingIndex < 1:
		return DeclensionForm{}, fmt.Errorf("form id %d: invalid ending index", id)
	}
	return f, nil
}

// DecodeConjugation decodes a verb form id, validating every digit range.
func DecodeConjugation(id FormID) (ConjugationForm, error) {
	n := int(id)
	f := ConjugationForm{
		LemmaID:     n / 100_000,
		Tense:       Tense(n / 10_000 % 10),
		Person:      Person(n / 1_000 % 10),
		Number:      Number(n / 100 % 10),
		Voice:       Voice(n / 10 % 10),
		EndingIndex: n % 10,
	}
	switch {
	case f.LemmaID < VerbLemmaStart || f.LemmaID > VerbLemmaMax:
		return ConjugationForm{}, fmt.Errorf("form id %d: verb lemma id %d out of range", id, f.LemmaID)
	case f.Tense < Present || f.Tense > Aorist:
		return ConjugationForm{}, fmt.Errorf("form id %d: invalid tense digit", id)
	case f.Person < First || f.Person > Third:
		return ConjugationForm{}, fmt.Errorf("form id %d: invalid person digit", id)
	case f.Number < Singular || f.Number > Plural:
		return ConjugationForm{}, fmt.Errorf("form id %d: invalid number digit", id)
	case f.Voice < Active || f.Voice > Reflexive:
		return ConjugationForm{}, fmt.Errorf("form id %d: invalid voice digit", id)
	case f.EndingIndex < 1:
		return ConjugationForm{}, fmt.Errorf("form id %d: invalid ending index", id)
	}
	return f, nil
}

// Decompose extracts the lemma id and the combination key from a form id.
// The combination key names the drilled grammatical axes only: case+number
// for nouns (gender is a lemma property), tense+person+number+voice for
// verbs. The ending index is excluded so alternative endings of the same
// cell share a key.
func Decompose(id FormID, domain Domain) (lemmaID int, combo string, err error) {
	switch domain {
	case Declension:
		f, err := DecodeDeclension(id)
		if err != nil {
			return 0, "", err
		}
		return f.LemmaID, f.Case.String() + "_" + f.Number.String(), nil
	case Conjugation:
		f, err := DecodeConjugation(id)
		if err != nil {
			return 0, "", err
		}
		return f.LemmaID, f.Tense.String() + "_" + f.Person.String() + "_" + f.Number.String() + "_" + f.Voice.String(), nil
	}
	return 0, "", fmt.Errorf("form id %d: unknown domain %d", id, domain)
}

// ConjugationCategory returns the tense+voice category key for a verb form.
func ConjugationCategory(id FormID) (string, error) {
	f, err := DecodeConjugation(id)
	if err != nil {
		return "", err
	}
	return f.Tense.String() + "_" + f.Voice.String(), nil
}
