package retriever

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ranking bonuses for CODEOWNERS owner and area token overlap
const (
	ownerMatchBonus = 0.18
	areaMatchBonus  = 0.10
)

var questionTokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9_-]+`)

var ownerSplitPattern = regexp.MustCompile(`[/._-]+`)

var areaSplitPattern = regexp.MustCompile(`[^a-z0-9_-]+`)

// a parsed CODEOWNERS rule with pre-tokenized owner and area hints
type codeownersRule struct {
	pattern     string
	ownerTokens map[string]struct{}
	areaTokens  map[string]struct{}
}

// resolved ownership profiles are cached per source path; CODEOWNERS
// files do not change within a process lifetime
var ownershipCache = struct {
	mu       sync.Mutex
	profiles map[string][2]map[string]struct{}
	rules    map[string][]codeownersRule
}{
	profiles: make(map[string][2]map[string]struct{}),
	rules:    make(map[string][]codeownersRule),
}

// TokenizeQuestion normalizes a question into lowercase search tokens
// of at least three characters.
func TokenizeQuestion(question string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, tok := range questionTokenPattern.FindAllString(strings.ToLower(question), -1) {
		if len(tok) >= 3 {
			tokens[tok] = struct{}{}
		}
	}

	return tokens
}

// OwnershipBonus scores a source file by CODEOWNERS owner and area
// token overlap with the question. Only absolute, existing paths can
// resolve to a repository root; everything else scores zero.
func OwnershipBonus(source string, questionTokens map[string]struct{}) float64 {
	if len(questionTokens) == 0 {
		return 0
	}

	ownerTokens, areaTokens := ownershipProfile(source)
	if len(ownerTokens) == 0 && len(areaTokens) == 0 {
		return 0
	}

	bonus := 0.0

	if tokensOverlap(ownerTokens, questionTokens) {
		bonus += ownerMatchBonus
	}

	if tokensOverlap(areaTokens, questionTokens) {
		bonus += areaMatchBonus
	}

	return bonus
}

func tokensOverlap(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}

	return false
}

// resolves owner and area tokens for a source file; the last matching
// CODEOWNERS rule wins, mirroring evaluation order
func ownershipProfile(source string) (map[string]struct{}, map[string]struct{}) {
	ownershipCache.mu.Lock()
	if cached, ok := ownershipCache.profiles[source]; ok {
		ownershipCache.mu.Unlock()
		return cached[0], cached[1]
	}
	ownershipCache.mu.Unlock()

	ownerTokens, areaTokens := resolveOwnership(source)

	ownershipCache.mu.Lock()
	ownershipCache.profiles[source] = [2]map[string]struct{}{ownerTokens, areaTokens}
	ownershipCache.mu.Unlock()

	return ownerTokens, areaTokens
}

func resolveOwnership(source string) (map[string]struct{}, map[string]struct{}) {
	if !filepath.IsAbs(source) {
		return nil, nil
	}

	if _, err := os.Stat(source); err != nil {
		return nil, nil
	}

	root := findRepoRoot(filepath.Dir(source))
	if root == "" {
		return nil, nil
	}

	rel, err := filepath.Rel(root, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, nil
	}

	rules := loadCodeownersRules(root)

	var matched *codeownersRule
	for i := range rules {
		if codeownersPatternMatches(rules[i].pattern, filepath.ToSlash(rel)) {
			matched = &rules[i]
		}
	}

	if matched == nil {
		return nil, nil
	}

	return matched.ownerTokens, matched.areaTokens
}

// walks up from a directory to the nearest repo-like root, marked by
// a .git directory or a CODEOWNERS file
func findRepoRoot(start string) string {
	cursor := start

	for {
		if _, err := os.Stat(filepath.Join(cursor, ".git")); err == nil {
			return cursor
		}

		if codeownersPath(cursor) != "" {
			return cursor
		}

		parent := filepath.Dir(cursor)
		if parent == cursor {
			return ""
		}

		cursor = parent
	}
}

func codeownersPath(root string) string {
	candidates := []string{
		filepath.Join(root, "CODEOWNERS"),
		filepath.Join(root, ".github", "CODEOWNERS"),
		filepath.Join(root, "docs", "CODEOWNERS"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

func loadCodeownersRules(root string) []codeownersRule {
	ownershipCache.mu.Lock()
	if cached, ok := ownershipCache.rules[root]; ok {
		ownershipCache.mu.Unlock()
		return cached
	}
	ownershipCache.mu.Unlock()

	rules := parseCodeownersFile(codeownersPath(root))

	ownershipCache.mu.Lock()
	ownershipCache.rules[root] = rules
	ownershipCache.mu.Unlock()

	return rules
}

func parseCodeownersFile(path string) []codeownersRule {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var rules []codeownersRule

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		rules = append(rules, codeownersRule{
			pattern:     parts[0],
			ownerTokens: ownerTokensFor(parts[1:]),
			areaTokens:  areaTokensFor(parts[0]),
		})
	}

	return rules
}

// normalizes @owner and @org/team handles into searchable tokens
func ownerTokensFor(owners []string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, owner := range owners {
		normalized := strings.ToLower(strings.TrimPrefix(owner, "@"))
		for _, piece := range ownerSplitPattern.Split(normalized, -1) {
			if len(piece) >= 3 {
				tokens[piece] = struct{}{}
			}
		}
	}

	return tokens
}

// extracts coarse area hints from a CODEOWNERS path pattern
func areaTokensFor(pattern string) map[string]struct{} {
	tokens := make(map[string]struct{})

	cleaned := strings.TrimLeft(strings.TrimSpace(pattern), "/")
	for _, piece := range strings.Split(cleaned, "/") {
		for _, part := range areaSplitPattern.Split(strings.ToLower(piece), -1) {
			if len(part) < 3 {
				continue
			}

			if strings.ContainsAny(part, "*?[]!") {
				continue
			}

			tokens[part] = struct{}{}
		}
	}

	return tokens
}

// approximate CODEOWNERS pattern matching for ranking hints
func codeownersPatternMatches(pattern, rel string) bool {
	pat := strings.TrimSpace(pattern)
	if pat == "" {
		return false
	}

	rel = strings.TrimLeft(rel, "./")

	// directory rule
	if strings.HasSuffix(pat, "/") {
		prefix := strings.Trim(pat, "/")
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}

	anchored := strings.HasPrefix(pat, "/")
	normalized := strings.TrimLeft(pat, "/")

	if anchored {
		ok, err := path.Match(normalized, rel)
		return err == nil && ok
	}

	// non-anchored path pattern with a slash can match anywhere
	if strings.Contains(normalized, "/") {
		if ok, err := path.Match(normalized, rel); err == nil && ok {
			return true
		}

		return rel == normalized || strings.HasSuffix(rel, "/"+normalized)
	}

	// basename pattern
	ok, err := path.Match(normalized, path.Base(rel))
	return err == nil && ok
}
