// Package eligibility projects the learner's filter settings onto the
// corpus, producing the set of form ids a practice session may draw from.
package eligibility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// Settings holds the per-domain practice filters. An empty slice means the
// dimension is unrestricted; a zero MaxLemmaRank means no upper rank bound.
type Settings struct {
	Cases   []grammar.Case   `json:"cases,omitempty"`
	Numbers []grammar.Number `json:"numbers,omitempty"`
	Genders []grammar.Gender `json:"genders,omitempty"`
	Tenses  []grammar.Tense  `json:"tenses,omitempty"`
	Persons []grammar.Person `json:"persons,omitempty"`
	Voices  []grammar.Voice  `json:"voices,omitempty"`

	// NounPatterns / VerbPatterns list enabled base paradigms. A variant or
	// irregular pattern is enabled when its base pattern is.
	NounPatterns []string `json:"noun_patterns,omitempty"`
	VerbPatterns []string `json:"verb_patterns,omitempty"`

	// MinLemmaRank / MaxLemmaRank bound the frequency-rank window
	// (1 = most frequent).
	MinLemmaRank int `json:"min_lemma_rank,omitempty"`
	MaxLemmaRank int `json:"max_lemma_rank,omitempty"`
}

// DefaultSettings returns the out-of-box filters for a domain: every
// grammatical dimension enabled, lemmas restricted to the 500 most frequent.
func DefaultSettings(domain grammar.Domain) Settings {
	s := Settings{MinLemmaRank: 1, MaxLemmaRank: 500}
	switch domain {
	case grammar.Declension:
		s.Cases = []grammar.Case{
			grammar.Nominative, grammar.Accusative, grammar.Instrumental, grammar.Dative,
			grammar.Ablative, grammar.Genitive, grammar.Locative, grammar.Vocative,
		}
		s.Numbers = []grammar.Number{grammar.Singular, grammar.Plural}
		s.Genders = []grammar.Gender{grammar.Masculine, grammar.Feminine, grammar.Neuter}
	case grammar.Conjugation:
		s.Tenses = []grammar.Tense{
			grammar.Present, grammar.Imperative, grammar.Optative, grammar.Future, grammar.Aorist,
		}
		s.Persons = []grammar.Person{grammar.First, grammar.Second, grammar.Third}
		s.Numbers = []grammar.Number{grammar.Singular, grammar.Plural}
		s.Voices = []grammar.Voice{grammar.Active, grammar.Reflexive}
	}
	return s
}

// SettingsStore round-trips the serialized settings document. Satisfied by
// store.SettingsRepo.
type SettingsStore interface {
	Save(ctx context.Context, domain grammar.Domain, data []byte) error
	Load(ctx context.Context, domain grammar.Domain) ([]byte, error)
}

// LoadSettings reads the saved settings for a domain, falling back to
// DefaultSettings when none have been saved yet.
func LoadSettings(ctx context.Context, repo SettingsStore, domain grammar.Domain) (Settings, error) {
	data, err := repo.Load(ctx, domain)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultSettings(domain), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// SaveSettings persists the settings for a domain.
func SaveSettings(ctx context.Context, repo SettingsStore, domain grammar.Domain, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := repo.Save(ctx, domain, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s Settings) rankAllowed(rank int) bool {
	if s.MinLemmaRank > 0 && rank < s.MinLemmaRank {
		return false
	}
	if s.MaxLemmaRank > 0 && rank > s.MaxLemmaRank {
		return false
	}
	return true
}

// patternAllowed checks a lemma's pattern against the enabled base
// paradigms; a variant counts as enabled when its parent base pattern is.
func (s Settings) patternAllowed(domain grammar.Domain, pattern string) bool {
	switch domain {
	case grammar.Declension:
		if len(s.NounPatterns) == 0 {
			return true
		}
		base := grammar.NounBasePattern(pattern)
		for _, p := range s.NounPatterns {
			if p == base {
				return true
			}
		}
	case grammar.Conjugation:
		if len(s.VerbPatterns) == 0 {
			return true
		}
		base := grammar.VerbBasePattern(pattern)
		for _, p := range s.VerbPatterns {
			if p == base {
				return true
			}
		}
	}
	return false
}

func (s Settings) declensionAllowed(f grammar.DeclensionForm) bool {
	return enabled(s.Cases, f.Case) && enabled(s.Numbers, f.Number) && enabled(s.Genders, f.Gender)
}

func (s Settings) conjugationAllowed(f grammar.ConjugationForm) bool {
	return enabled(s.Tenses, f.Tense) && enabled(s.Persons, f.Person) &&
		enabled(s.Numbers, f.Number) && enabled(s.Voices, f.Voice)
}

// enabled reports membership, with an empty list meaning unrestricted.
func enabled[T comparable](values []T, v T) bool {
	if len(values) == 0 {
		return true
	}
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
