package guidance

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed prompts/*.md
var promptFS embed.FS

const (
	promptQuiz             = "quiz"
	promptAdaptiveStart    = "adaptive_start"
	promptAdaptiveNext     = "adaptive_next"
	promptAdaptiveNextUser = "adaptive_next_user"
	promptMarket           = "market"
	promptRecommend        = "recommend"
	promptCompare          = "compare"
	promptResume           = "resume"
	promptRoadmap          = "roadmap"
)

// render loads the named template and substitutes {{KEY}} placeholders.
func render(name string, vars map[string]string) string {
	data, err := promptFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		// templates are embedded at build time
		panic(fmt.Sprintf("missing prompt template %q: %v", name, err))
	}

	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}

	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(string(data)))
}
