package eligibility

import (
	"context"
	"fmt"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// Corpus is the read surface the provider needs from the training database.
// Satisfied by store.CorpusRepo.
type Corpus interface {
	Lemmas(ctx context.Context, domain grammar.Domain) ([]store.Lemma, error)
	AttestedFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error)
}

// Provider filters the attested corpus forms through the per-domain
// settings. No qualifying lemma or combination yields an empty list, not an
// error.
type Provider struct {
	corpus   Corpus
	settings map[grammar.Domain]Settings
}

// NewProvider creates a provider with the given per-domain settings.
func NewProvider(corpus Corpus, declension, conjugation Settings) *Provider {
	return &Provider{
		corpus: corpus,
		settings: map[grammar.Domain]Settings{
			grammar.Declension:  declension,
			grammar.Conjugation: conjugation,
		},
	}
}

// EligibleFormIDs returns every corpus-attested form id that satisfies the
// domain's enabled filters. Forms whose ids fail to decode are skipped; they
// cannot be matched against the grammatical filters.
func (p *Provider) EligibleFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error) {
	s, ok := p.settings[domain]
	if !ok {
		return nil, fmt.Errorf("no settings for domain %s", domain)
	}

	lemmas, err := p.corpus.Lemmas(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("corpus lemmas: %w", err)
	}
	allowed := make(map[int]struct{}, len(lemmas))
	for _, l := range lemmas {
		if s.rankAllowed(l.Rank) && s.patternAllowed(domain, l.Pattern) {
			allowed[l.ID] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return nil, nil
	}

	ids, err := p.corpus.AttestedFormIDs(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("attested forms: %w", err)
	}

	var out []grammar.FormID
	for _, id := range ids {
		switch domain {
		case grammar.Declension:
			f, err := grammar.DecodeDeclension(id)
			if err != nil {
				continue
			}
			if _, ok := allowed[f.LemmaID]; ok && s.declensionAllowed(f) {
				out = append(out, id)
			}
		case grammar.Conjugation:
			f, err := grammar.DecodeConjugation(id)
			if err != nil {
				continue
			}
			if _, ok := allowed[f.LemmaID]; ok && s.conjugationAllowed(f) {
				out = append(out, id)
			}
		}
	}
	return out, nil
}
