package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ragops/server/internal/errors"
)

var modeInstructions = map[string]string{
	ModeDefault: "Be concise, technically accurate, and grounded in context.",
	ModeExplainLikeJunior: "Explain like a junior engineer onboarding to a new codebase. " +
		"Define key terms and avoid skipping foundational steps.",
	ModeShowWhereInCode: "Focus on where behavior lives in the code and cite files/lines clearly. " +
		"Use direct references to code locations when possible.",
	ModeStepByStep: "Return the answer as a numbered sequence of concrete steps, " +
		"each mapped to retrieved context.",
}

var styleInstructions = map[string]string{
	StyleConcise: "Return 3-6 short bullets. Start with a one-sentence summary, " +
		"then key points and where to read next.",
	StyleDetailed: "Return a structured explanation with sections and actionable detail. " +
		"Still avoid dumping long raw file blocks.",
}

// empty defaults to "default", unknown modes are rejected
func NormalizeMode(mode string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = ModeDefault
	}

	if _, ok := modeInstructions[normalized]; !ok {
		return "", errors.NewValidationError(fmt.Sprintf(
			"unsupported mode '%s', supported modes: %s", mode, supportedKeys(modeInstructions)))
	}

	return normalized, nil
}

// empty defaults to "concise", unknown styles are rejected
func NormalizeStyle(style string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(style))
	if normalized == "" {
		normalized = StyleConcise
	}

	if _, ok := styleInstructions[normalized]; !ok {
		return "", errors.NewValidationError(fmt.Sprintf(
			"unsupported answer_style '%s', supported values: %s", style, supportedKeys(styleInstructions)))
	}

	return normalized, nil
}

func modeInstruction(mode string) string {
	if instruction, ok := modeInstructions[mode]; ok {
		return instruction
	}

	return modeInstructions[ModeDefault]
}

func styleInstruction(style string) string {
	if instruction, ok := styleInstructions[style]; ok {
		return instruction
	}

	return styleInstructions[StyleConcise]
}

func supportedKeys(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}
