package extraction

import "strings"

// skillAliases maps common spellings to one canonical key for deduplication.
var skillAliases = map[string]string{
	"golang":   "go",
	"go lang":  "go",
	"js":       "javascript",
	"ts":       "typescript",
	"k8s":      "kubernetes",
	"react.js": "react",
	"reactjs":  "react",
	"vue.js":   "vue",
	"vuejs":    "vue",
	"nodejs":   "node.js",
	"postgres": "postgresql",
	"ml":       "machine learning",
	"sklearn":  "scikit-learn",
}

// skillKey returns the comparison key of a skill name.
func skillKey(skill string) string {
	key := strings.ToLower(strings.Join(strings.Fields(skill), " "))
	if canonical, ok := skillAliases[key]; ok {
		return canonical
	}
	return key
}

// CleanSkills trims each skill, drops blanks and removes duplicates that
// differ only in case, spacing or a known alias. The first spelling wins and
// order is preserved.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := skillKey(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}
