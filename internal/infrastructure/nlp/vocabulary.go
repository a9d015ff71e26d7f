package nlp

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var defaultVocabulary []byte

// Vocabulary is the curated skill list matched against both texts during
// skill gap analysis.
type Vocabulary struct {
	Skills []string `yaml:"skills"`
}

// LoadVocabulary reads the skill list from path, falling back to the embedded
// default when path is empty.
func LoadVocabulary(path string) (*Vocabulary, error) {
	raw := defaultVocabulary
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read skills file: %w", err)
		}
		raw = data
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(raw, &vocab); err != nil {
		return nil, fmt.Errorf("parse skills file: %w", err)
	}

	seen := make(map[string]bool, len(vocab.Skills))
	out := make([]string, 0, len(vocab.Skills))
	for _, skill := range vocab.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("skills file contains no terms")
	}
	vocab.Skills = out
	return &vocab, nil
}
