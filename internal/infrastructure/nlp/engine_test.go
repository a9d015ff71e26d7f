package nlp

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	vocab, err := LoadVocabulary("")
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	return NewEngine(vocab, 0)
}

func TestMatchIdenticalTextsScores100(t *testing.T) {
	engine := newTestEngine(t)
	text := "Senior Go engineer building microservices with Docker, Kubernetes and PostgreSQL."

	match, err := engine.Match(text, text)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if match.Score != 100.0 {
		t.Fatalf("expected score 100.0 for identical texts, got %v", match.Score)
	}
	if len(match.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills for identical texts, got %v", match.MissingSkills)
	}
}

func TestMatchDisjointTextsScoresZero(t *testing.T) {
	engine := newTestEngine(t)

	match, err := engine.Match("kubernetes docker terraform", "gardening cooking painting")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if match.Score != 0.0 {
		t.Fatalf("expected score 0.0 for disjoint texts, got %v", match.Score)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	jd := "We need a Python engineer with Docker, Kubernetes and SQL experience."
	resume := "Python developer, five years of Docker and SQL in production."

	first, err := engine.Match(jd, resume)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	second, err := engine.Match(jd, resume)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if first.Score != second.Score {
		t.Fatalf("expected identical scores, got %v and %v", first.Score, second.Score)
	}
	if !slices.Equal(first.KeyStrengths, second.KeyStrengths) {
		t.Fatalf("expected identical strengths, got %v and %v", first.KeyStrengths, second.KeyStrengths)
	}
	if !slices.Equal(first.MissingSkills, second.MissingSkills) {
		t.Fatalf("expected identical missing skills, got %v and %v", first.MissingSkills, second.MissingSkills)
	}
}

func TestMatchReportsStrengthsAndMissingSkills(t *testing.T) {
	engine := newTestEngine(t)
	jd := "Looking for a Python developer with Docker and Kubernetes experience."
	resume := "Seasoned Python developer shipping backend services."

	match, err := engine.Match(jd, resume)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !slices.Contains(match.KeyStrengths, "python") {
		t.Fatalf("expected python in strengths, got %v", match.KeyStrengths)
	}
	if !slices.Contains(match.MissingSkills, "docker") || !slices.Contains(match.MissingSkills, "kubernetes") {
		t.Fatalf("expected docker and kubernetes in missing skills, got %v", match.MissingSkills)
	}
	if slices.Contains(match.MissingSkills, "python") {
		t.Fatalf("python must not be reported missing: %v", match.MissingSkills)
	}
	if match.Feedback == "" {
		t.Fatalf("expected feedback text")
	}
}

func TestMatchUsesCanonicalVocabularySurface(t *testing.T) {
	engine := newTestEngine(t)
	jd := "Experience with machine learning models required."
	resume := "Built Machine Learning pipelines for ranking."

	match, err := engine.Match(jd, resume)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !slices.Contains(match.KeyStrengths, "machine learning") {
		t.Fatalf("expected canonical 'machine learning' in strengths, got %v", match.KeyStrengths)
	}
}

func TestMatchCapsSkillLists(t *testing.T) {
	vocab, err := LoadVocabulary("")
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	engine := NewEngine(vocab, 2)

	jd := "python docker kubernetes terraform ansible jenkins prometheus grafana kafka redis"
	match, err := engine.Match(jd, "accountant with excel reporting background")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(match.MissingSkills) > 2 {
		t.Fatalf("expected missing skills capped at 2, got %d", len(match.MissingSkills))
	}
}

func TestMatchEmptyResumeReturnsInvalidInput(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Match("python developer wanted", "   \n\t ")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUsable(t *testing.T) {
	engine := newTestEngine(t)
	if engine.Usable("the and of a") {
		t.Fatalf("stop-word-only text must not be usable")
	}
	if !engine.Usable("golang") {
		t.Fatalf("expected golang to be usable")
	}
}

func TestLoadVocabularyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	if err := os.WriteFile(path, []byte("skills:\n  - Golang\n  - golang\n  - observability\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	if len(vocab.Skills) != 2 {
		t.Fatalf("expected duplicates collapsed to 2 terms, got %v", vocab.Skills)
	}
	if vocab.Skills[0] != "golang" {
		t.Fatalf("expected lowercased term, got %q", vocab.Skills[0])
	}
}

func TestTokenizeKeepsTechSymbols(t *testing.T) {
	tokens := tokenize("C++ and C# with Node.js")
	got := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.Surface)
	}
	want := []string{"c++", "c#", "node.js"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
