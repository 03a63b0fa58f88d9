package heuristic

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/careerlens/internal/career"
)

const (
	LevelEntry  = "entry"
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"

	maxJobSuggestions = 4
	targetRoleWhy     = "Matches your target role"
)

var (
	internPattern = regexp.MustCompile(`\bintern(ship)?s?\b`)
	yearsPattern  = regexp.MustCompile(`(\d+)\+?\s*(?:years|yrs)\b`)
)

type scoredRole struct {
	career.JobSuggestion
	score int
}

// SuggestJobs proposes up to four roles for the resume, best first.
// A non-empty targetRole is always included when it is not detected already.
func SuggestJobs(resumeText, targetRole string) []career.JobSuggestion {
	low := newText(resumeText)
	level := DetectLevel(resumeText)

	roles := make([]scoredRole, 0, len(resumeRules)+1)
	add := func(title, why string, score int) {
		roles = append(roles, scoredRole{
			JobSuggestion: career.JobSuggestion{Title: title, Level: level, WhyFit: why},
			score:         score,
		})
	}

	for _, rule := range resumeRules {
		if !low.hasAny(rule.triggers) {
			continue
		}
		if len(rule.requires) > 0 && !low.hasAny(rule.requires) {
			continue
		}
		if rule.skipIfPrefix != "" && hasTitlePrefix(roles, rule.skipIfPrefix) {
			continue
		}

		score := rule.fixed
		if rule.scoring != nil {
			score = low.count(rule.scoring) + rule.bonus
		}

		why := rule.why
		if found := low.present(rule.evidence); len(found) > 0 {
			why = fmt.Sprintf("%s (%s)", why, strings.Join(found, ", "))
		}

		add(rule.title, why, score)
	}

	if target := strings.TrimSpace(targetRole); target != "" && !hasTitle(roles, target) {
		add(target, targetRoleWhy, 0)
	}

	return rankJobs(roles)
}

// DetectLevel estimates seniority from internship mentions and years of experience.
func DetectLevel(resumeText string) string {
	low := strings.ToLower(resumeText)
	if internPattern.MatchString(low) {
		return LevelEntry
	}

	years := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(low, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > years {
			years = n
		}
	}

	switch {
	case years >= 7:
		return LevelSenior
	case years >= 4:
		return LevelMid
	case years >= 2:
		return LevelJunior
	default:
		return LevelEntry
	}
}

// rankJobs keeps the best scoring entry per title, sorts by score and trims the list.
func rankJobs(roles []scoredRole) []career.JobSuggestion {
	index := make(map[string]int, len(roles))
	uniq := make([]scoredRole, 0, len(roles))
	for _, r := range roles {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			continue
		}
		if i, ok := index[r.Title]; ok {
			if r.score > uniq[i].score {
				uniq[i] = r
			}
			continue
		}
		index[r.Title] = len(uniq)
		uniq = append(uniq, r)
	}

	sort.SliceStable(uniq, func(i, j int) bool { return uniq[i].score > uniq[j].score })

	if len(uniq) > maxJobSuggestions {
		uniq = uniq[:maxJobSuggestions]
	}

	out := make([]career.JobSuggestion, 0, len(uniq))
	for _, r := range uniq {
		out = append(out, r.JobSuggestion)
	}
	return out
}

func hasTitle(roles []scoredRole, title string) bool {
	for _, r := range roles {
		if strings.EqualFold(r.Title, title) {
			return true
		}
	}
	return false
}

func hasTitlePrefix(roles []scoredRole, prefix string) bool {
	for _, r := range roles {
		if strings.HasPrefix(r.Title, prefix) {
			return true
		}
	}
	return false
}
