package normalize

import (
	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/heuristic"
)

const maxSkillsPerWeek = 4

// Recommend normalizes a learning plan. An empty roadmap is replaced by a
// generic plan spanning weeks.
func Recommend(payload any, role string, weeks int) career.Recommendation {
	var raw struct {
		Role          any `mapstructure:"role"`
		LearningPaths any `mapstructure:"learning_paths"`
		RoadmapWeeks  any `mapstructure:"roadmap_weeks"`
		ResumeTips    any `mapstructure:"resume_tips"`
	}
	_ = decodeInto(payload, recommendAliases, &raw)

	out := career.Recommendation{
		Role:          firstNonEmpty(asString(raw.Role), role),
		LearningPaths: learningPaths(raw.LearningPaths),
		RoadmapWeeks:  planWeeks(raw.RoadmapWeeks, weeks),
		ResumeTips:    asStrings(raw.ResumeTips),
	}

	if len(out.RoadmapWeeks) == 0 {
		out.RoadmapWeeks = heuristic.GenericPlan(out.Role, weeks)
	}

	return out
}

func learningPaths(v any) []career.LearningPath {
	items := asList(v)
	out := make([]career.LearningPath, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if title := asString(s); title != "" {
				out = append(out, career.LearningPath{Title: title, Resources: []career.Resource{}})
			}
			continue
		}

		var raw struct {
			Title     any `mapstructure:"title"`
			Resources any `mapstructure:"resources"`
		}
		if err := decodeInto(item, pathAliases, &raw); err != nil {
			continue
		}

		out = append(out, career.LearningPath{
			Title:     asString(raw.Title),
			Resources: resources(raw.Resources),
		})
	}
	return out
}

func resources(v any) []career.Resource {
	items := asList(v)
	out := make([]career.Resource, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if name := asString(s); name != "" {
				out = append(out, career.Resource{Name: name})
			}
			continue
		}

		var raw struct {
			Name any `mapstructure:"name"`
			URL  any `mapstructure:"url"`
		}
		if err := decodeInto(item, resourceAliases, &raw); err != nil {
			continue
		}
		out = append(out, career.Resource{Name: asString(raw.Name), URL: asString(raw.URL)})
	}
	return out
}

// planWeeks numbers entries by position when the model's week is unusable or
// outside 1..weeks. Entries past the last week are dropped.
func planWeeks(v any, weeks int) []career.RoadmapWeek {
	items := asList(v)
	out := make([]career.RoadmapWeek, 0, len(items))
	for i, item := range items {
		var raw struct {
			Week     any `mapstructure:"week"`
			Focus    any `mapstructure:"focus"`
			Outcomes any `mapstructure:"outcomes"`
		}
		if s, ok := item.(string); ok {
			raw.Focus = s
		} else if err := decodeInto(item, planWeekAliases, &raw); err != nil {
			continue
		}

		week, ok := asInt(raw.Week)
		if !ok || !inWeekRange(week, weeks) {
			week = i + 1
		}
		if !inWeekRange(week, weeks) {
			continue
		}

		out = append(out, career.RoadmapWeek{
			Week:     week,
			Focus:    asString(raw.Focus),
			Outcomes: asStrings(raw.Outcomes),
		})
	}
	return out
}

// Roadmap normalizes a weekly skill roadmap. Entries without a numeric week
// or with a week outside 1..weeks are dropped; when nothing usable remains a generic roadmap is returned.
func Roadmap(payload any, job string, weeks int) career.Roadmap {
	var raw struct {
		Job   any `mapstructure:"job"`
		Weeks any `mapstructure:"weeks"`
	}
	if err := decodeInto(payload, roadmapAliases, &raw); err != nil {
		if list, ok := payload.([]any); ok {
			raw.Weeks = list
		}
	}

	out := make([]career.SkillWeek, 0, weeks)
	for _, item := range asList(raw.Weeks) {
		var w struct {
			Week   int `mapstructure:"week"`
			Skills any `mapstructure:"skills"`
		}
		if err := decodeInto(item, skillWeekAliases, &w); err != nil {
			continue
		}
		if _, ok := asObject(item); ok && !hasWeek(item) {
			continue
		}

		if !inWeekRange(w.Week, weeks) {
			continue
		}

		skills := asStrings(w.Skills)
		if len(skills) > maxSkillsPerWeek {
			skills = skills[:maxSkillsPerWeek]
		}
		out = append(out, career.SkillWeek{Week: w.Week, Skills: skills})
	}

	if len(out) == 0 {
		out = heuristic.GenericSkillWeeks(weeks)
	}

	return career.Roadmap{Job: firstNonEmpty(asString(raw.Job), job), Weeks: out}
}

// inWeekRange reports whether week falls in 1..weeks. A non-positive weeks
// leaves the upper bound open.
func inWeekRange(week, weeks int) bool {
	return week >= 1 && (weeks <= 0 || week <= weeks)
}

func hasWeek(item any) bool {
	obj, _ := asObject(item)
	_, ok := lookup(obj, skillWeekAliases["week"]...)
	return ok
}
