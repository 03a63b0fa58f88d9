package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/careerlens/internal/career"
)

const (
	maxQuizMatches   = 3
	maxMatchedSkills = 5
	baseConfidence   = 40
	confidenceStep   = 10
	maxConfidence    = 90
)

type candidateScore struct {
	candidate RoleCandidate
	score     int
	skills    []string
}

// MatchAnswers ranks Candidates against the quiz answers and returns up to
// three matches. It always returns at least one match.
func MatchAnswers(answers []any) []career.RoleMatch {
	parts := make([]string, 0, len(answers))
	for _, a := range answers {
		parts = append(parts, fmt.Sprint(a))
	}
	low := newText(strings.Join(parts, " \n "))

	found := make([]candidateScore, 0, len(Candidates))
	for _, c := range Candidates {
		matched := low.present(c.Keywords)
		if len(matched) == 0 {
			continue
		}

		skills := make([]string, 0, maxMatchedSkills)
		for _, k := range matched {
			if len(skills) == maxMatchedSkills {
				break
			}
			skills = append(skills, strings.ToUpper(k))
		}

		found = append(found, candidateScore{candidate: c, score: len(matched), skills: skills})
	}

	if len(found) == 0 {
		found = append(found, candidateScore{candidate: Generalist, score: 1, skills: clone(Generalist.Skills)})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].score > found[j].score })
	if len(found) > maxQuizMatches {
		found = found[:maxQuizMatches]
	}

	matches := make([]career.RoleMatch, 0, len(found))
	for _, f := range found {
		matches = append(matches, career.RoleMatch{
			Role:           f.candidate.Title,
			Confidence:     Confidence(f.score),
			Reasoning:      fmt.Sprintf("Signals found in your answers (e.g., %s).", strings.Join(f.skills, ", ")),
			PersonalityFit: clone(f.candidate.Persona),
			SkillsFit:      f.skills,
		})
	}

	return matches
}

// Confidence maps a keyword score onto a 40..90 percentage.
func Confidence(score int) int {
	return min(maxConfidence, baseConfidence+score*confidenceStep)
}

// SkillsFor returns fallback skill labels for a free-form role title.
func SkillsFor(role string) []string {
	for _, c := range Candidates {
		if strings.EqualFold(strings.TrimSpace(role), c.Title) {
			return clone(c.Skills)
		}
	}

	low := newText(role)
	best, bestScore := -1, 0
	for i, c := range Candidates {
		if score := low.count(c.Keywords) + low.count(titleWords(c.Title)); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return clone(Candidates[best].Skills)
	}

	return clone(genericSkills)
}

func titleWords(title string) []string {
	return strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return r == ' ' || r == '/' || r == '(' || r == ')'
	})
}
