package nlp

import (
	"fmt"
	"sort"
	"strings"
)

const maxNGram = 3

// docTerms holds the candidate skill terms of one document: a map from stem
// key to display surface, plus the full stem n-gram set used for vocabulary
// matching.
type docTerms struct {
	terms  map[string]string
	ngrams map[string]bool
}

func (e *Engine) extractTerms(tokens []token) docTerms {
	doc := docTerms{
		terms:  make(map[string]string, len(tokens)),
		ngrams: make(map[string]bool, len(tokens)*2),
	}

	st := stems(tokens)
	for i := range st {
		for n := 1; n <= maxNGram && i+n <= len(st); n++ {
			doc.ngrams[strings.Join(st[i:i+n], " ")] = true
		}
	}

	// Free terms: unigrams and adjacent bigrams, mirroring the short
	// noun-chunk heuristic of the similarity pipeline's origin.
	for i, t := range tokens {
		if len(t.Surface) > 2 {
			addTerm(doc.terms, t.Stem, t.Surface)
		}
		if i+1 < len(tokens) {
			surface := tokens[i].Surface + " " + tokens[i+1].Surface
			if len(surface) > 2 {
				addTerm(doc.terms, tokens[i].Stem+" "+tokens[i+1].Stem, surface)
			}
		}
	}

	// Vocabulary terms override free surfaces so output uses canonical names.
	for _, v := range e.vocab {
		if doc.ngrams[v.key] {
			doc.terms[v.key] = v.surface
		}
	}

	return doc
}

func addTerm(terms map[string]string, key, surface string) {
	if key == "" {
		return
	}
	if _, ok := terms[key]; !ok {
		terms[key] = surface
	}
}

// skillGap diffs the candidate terms of the job description against the
// resume. Counts in the feedback line reflect the full sets; the returned
// lists are sorted and capped for display.
func (e *Engine) skillGap(jdTokens, resumeTokens []token) (strengths, missing []string, feedback string) {
	jd := e.extractTerms(jdTokens)
	resume := e.extractTerms(resumeTokens)
	if len(jd.terms) == 0 {
		return nil, nil, "Could not extract skills from Job Description."
	}

	for key, surface := range jd.terms {
		if _, ok := resume.terms[key]; ok {
			strengths = append(strengths, surface)
		} else {
			missing = append(missing, surface)
		}
	}
	sort.Strings(strengths)
	sort.Strings(missing)

	feedback = fmt.Sprintf("Candidate shows strength in %d key areas. ", len(strengths))
	if len(missing) > 0 {
		preview := missing
		if len(preview) > 3 {
			preview = preview[:3]
		}
		feedback += fmt.Sprintf("Potential gaps identified in %d areas like: %s...", len(missing), strings.Join(preview, ", "))
	} else {
		feedback += "Covers all key skill areas identified."
	}

	return capTerms(strengths, e.maxSkills), capTerms(missing, e.maxSkills), feedback
}

func capTerms(terms []string, limit int) []string {
	if limit > 0 && len(terms) > limit {
		return terms[:limit]
	}
	return terms
}
