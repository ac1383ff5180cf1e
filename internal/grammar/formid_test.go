package grammar

import "testing"

func TestEncodeDecodeDeclension(t *testing.T) {
	f := DeclensionForm{
		LemmaID:     10789,
		Case:        Instrumental,
		Gender:      Masculine,
		Number:      Plural,
		EndingIndex: 2,
	}
	id := EncodeDeclension(f)
	if id != 107893122 {
		t.Fatalf("EncodeDeclension = %d, want 107893122", id)
	}
	got, err := DecodeDeclension(id)
	if err != nil {
		t.Fatalf("DecodeDeclension: %v", err)
	}
	if got != f {
		t.Errorf("round trip = %+v, want %+v", got, f)
	}
}

func TestEncodeDecodeConjugation(t *testing.T) {
	f := ConjugationForm{
		LemmaID:     70683,
		Tense:       Imperative,
		Person:      Third,
		Number:      Singular,
		Voice:       Active,
		EndingIndex: 3,
	}
	id := EncodeConjugation(f)
	if id != 7068323103 {
		t.Fatalf("EncodeConjugation = %d, want 7068323103", id)
	}
	got, err := DecodeConjugation(id)
	if err != nil {
		t.Fatalf("DecodeConjugation: %v", err)
	}
	if got != f {
		t.Errorf("round trip = %+v, want %+v", got, f)
	}
}

func TestDecodeDeclensionRejectsMalformed(t *testing.T) {
	bad := []FormID{
		0,
		107893121 - 100000000, // lemma id below noun range
		700013122,             // lemma id in verb range
		107899122,             // case digit 9
		107890122,             // case digit 0
		107893120,             // ending index 0
	}
	for _, id := range bad {
		if _, err := DecodeDeclension(id); err == nil {
			t.Errorf("DecodeDeclension(%d): expected error", id)
		}
	}
}

func TestDecodeConjugationRejectsMalformed(t *testing.T) {
	bad := []FormID{
		0,
		1078931220, // lemma id in noun range
		7068393103, // tense digit 9
		7068323193, // voice digit 9
		7068323100, // ending index 0
	}
	for _, id := range bad {
		if _, err := DecodeConjugation(id); err == nil {
			t.Errorf("DecodeConjugation(%d): expected error", id)
		}
	}
}

func TestDecompose(t *testing.T) {
	nounID := EncodeDeclension(DeclensionForm{LemmaID: 10789, Case: Accusative, Gender: Masculine, Number: Singular, EndingIndex: 1})
	lemma, combo, err := Decompose(nounID, Declension)
	if err != nil {
		t.Fatalf("Decompose noun: %v", err)
	}
	if lemma != 10789 || combo != "acc_sg" {
		t.Errorf("Decompose noun = (%d, %q), want (10789, acc_sg)", lemma, combo)
	}

	verbID := EncodeConjugation(ConjugationForm{LemmaID: 70683, Tense: Present, Person: Third, Number: Plural, Voice: Reflexive, EndingIndex: 1})
	lemma, combo, err = Decompose(verbID, Conjugation)
	if err != nil {
		t.Fatalf("Decompose verb: %v", err)
	}
	if lemma != 70683 || combo != "pr_3rd_pl_refl" {
		t.Errorf("Decompose verb = (%d, %q), want (70683, pr_3rd_pl_refl)", lemma, combo)
	}

	if _, _, err := Decompose(nounID, Domain(9)); err == nil {
		t.Error("Decompose with unknown domain: expected error")
	}
}

func TestDecomposeSharedAcrossEndings(t *testing.T) {
	a := EncodeDeclension(DeclensionForm{LemmaID: 10001, Case: Genitive, Gender: Neuter, Number: Plural, EndingIndex: 1})
	b := EncodeDeclension(DeclensionForm{LemmaID: 10001, Case: Genitive, Gender: Neuter, Number: Plural, EndingIndex: 2})
	_, comboA, _ := Decompose(a, Declension)
	_, comboB, _ := Decompose(b, Declension)
	if comboA != comboB {
		t.Errorf("alternative endings should share a combo key: %q != %q", comboA, comboB)
	}
}

func TestConjugationCategory(t *testing.T) {
	id := EncodeConjugation(ConjugationForm{LemmaID: 70683, Tense: Aorist, Person: First, Number: Singular, Voice: Active, EndingIndex: 1})
	cat, err := ConjugationCategory(id)
	if err != nil {
		t.Fatalf("ConjugationCategory: %v", err)
	}
	if cat != "aor_act" {
		t.Errorf("ConjugationCategory = %q, want aor_act", cat)
	}
}
