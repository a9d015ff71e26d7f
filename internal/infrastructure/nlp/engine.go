// Package nlp implements the deterministic text pipeline behind resume
// scoring: tokenization, stop-word removal, snowball stemming, TF-IDF cosine
// similarity and vocabulary-based skill gap analysis.
package nlp

import (
	"errors"
	"strings"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

const defaultMaxSkills = 10

type vocabTerm struct {
	surface string
	key     string
}

type Engine struct {
	vocab     []vocabTerm
	maxSkills int
}

func NewEngine(vocab *Vocabulary, maxSkills int) *Engine {
	if maxSkills <= 0 {
		maxSkills = defaultMaxSkills
	}

	e := &Engine{maxSkills: maxSkills}
	if vocab == nil {
		return e
	}
	for _, skill := range vocab.Skills {
		key := strings.Join(stems(tokenize(skill)), " ")
		if key == "" {
			continue
		}
		e.vocab = append(e.vocab, vocabTerm{surface: skill, key: key})
	}
	return e
}

func (e *Engine) Usable(text string) bool {
	return len(tokenize(text)) > 0
}

// Match scores resumeText against jobDescription. The score is percentage
// scaled cosine similarity of the TF-IDF vectors; strengths and missing
// skills come from diffing candidate skill terms of the two texts.
func (e *Engine) Match(jobDescription, resumeText string) (domain.Match, error) {
	jdTokens := tokenize(jobDescription)
	if len(jdTokens) == 0 {
		return domain.Match{}, domain.WrapError(domain.ErrInvalidInput, "preprocess job description", errors.New("no tokens after preprocessing"))
	}
	resumeTokens := tokenize(resumeText)
	if len(resumeTokens) == 0 {
		return domain.Match{}, domain.WrapError(domain.ErrInvalidInput, "preprocess resume text", errors.New("no tokens after preprocessing"))
	}

	score := roundScore(cosineTFIDF(stems(jdTokens), stems(resumeTokens)))
	strengths, missing, feedback := e.skillGap(jdTokens, resumeTokens)

	return domain.Match{
		Score:         score,
		KeyStrengths:  strengths,
		MissingSkills: missing,
		Feedback:      feedback,
	}, nil
}
