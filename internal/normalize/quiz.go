package normalize

import (
	"errors"

	"github.com/google/uuid"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/heuristic"
)

var errNotObject = errors.New("payload is not a json object")

type rawMatch struct {
	Role           any `mapstructure:"role"`
	Confidence     any `mapstructure:"confidence"`
	Reasoning      any `mapstructure:"reasoning"`
	PersonalityFit any `mapstructure:"personality_fit"`
	SkillsFit      any `mapstructure:"skills_fit"`
}

// Quiz returns the model's role matches, falling back to the answer
// heuristic when the payload holds none.
func Quiz(payload any, answers []any) career.QuizResult {
	var raw struct {
		Matches any `mapstructure:"matches"`
	}
	if err := decodeInto(payload, quizAliases, &raw); err != nil {
		if list, ok := payload.([]any); ok {
			raw.Matches = list
		}
	}

	matches := make([]career.RoleMatch, 0, 3)
	for _, item := range asList(raw.Matches) {
		var m rawMatch
		if err := decodeInto(item, matchAliases, &m); err != nil {
			continue
		}
		role := asString(m.Role)
		if role == "" {
			continue
		}
		matches = append(matches, career.RoleMatch{
			Role:           role,
			Confidence:     percent(m.Confidence),
			Reasoning:      asString(m.Reasoning),
			PersonalityFit: asStrings(m.PersonalityFit),
			SkillsFit:      asStrings(m.SkillsFit),
		})
	}

	if len(matches) == 0 {
		matches = heuristic.MatchAnswers(answers)
	}

	return career.QuizResult{Matches: matches}
}

// Question extracts the adaptive quiz question. Payloads without question
// text are replaced by the n-th built-in question.
func Question(payload any, n int) career.QuestionResult {
	inner := payload
	if obj, ok := asObject(payload); ok {
		if q, ok := asObject(obj["question"]); ok {
			inner = q
		}
	}

	var raw struct {
		ID      any `mapstructure:"id"`
		Text    any `mapstructure:"text"`
		Options any `mapstructure:"options"`
	}
	if err := decodeInto(inner, questionAliases, &raw); err != nil || asString(raw.Text) == "" {
		return career.QuestionResult{Question: heuristic.FallbackQuestion(n)}
	}

	id := asString(raw.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return career.QuestionResult{Question: career.Question{
		ID:      id,
		Text:    asString(raw.Text),
		Options: asStrings(raw.Options),
	}}
}
