package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Case struct {
	ID                     string   `json:"id" yaml:"id"`
	Question               string   `json:"question" yaml:"question"`
	Collection             string   `json:"collection" yaml:"collection"`
	ExpectedSourceContains []string `json:"expected_source_contains" yaml:"expected_source_contains"`
	ExpectedAnswerContains []string `json:"expected_answer_contains" yaml:"expected_answer_contains"`
}

// LoadCases reads an eval dataset from a JSON or YAML file.
// Cases without an id get one assigned by position.
func LoadCases(path, defaultCollection string) ([]Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var cases []Case

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cases)
	default:
		err = json.Unmarshal(raw, &cases)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	for i := range cases {
		if strings.TrimSpace(cases[i].Question) == "" {
			return nil, fmt.Errorf("case #%d missing required field 'question'", i+1)
		}

		if cases[i].ID == "" {
			cases[i].ID = fmt.Sprintf("case-%d", i+1)
		}

		if strings.TrimSpace(cases[i].Collection) == "" {
			cases[i].Collection = defaultCollection
		}

		cases[i].ExpectedSourceContains = normalizeTokens(cases[i].ExpectedSourceContains)
		cases[i].ExpectedAnswerContains = normalizeTokens(cases[i].ExpectedAnswerContains)
	}

	return cases, nil
}

func normalizeTokens(tokens []string) []string {
	var out []string

	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			out = append(out, token)
		}
	}

	return out
}
