package normalize

import (
	"strings"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/heuristic"
)

var levels = map[string]bool{
	heuristic.LevelEntry:  true,
	heuristic.LevelJunior: true,
	heuristic.LevelMid:    true,
	heuristic.LevelSenior: true,
}

// Resume normalizes a resume analysis. Job suggestions fall back to the
// resume heuristic when the model supplied none.
func Resume(payload any, resumeText, targetRole string) career.ResumeAnalysis {
	var raw struct {
		TargetRole               any `mapstructure:"target_role"`
		ATSScorePercent          any `mapstructure:"ats_score_percent"`
		MissingKeywords          any `mapstructure:"missing_keywords"`
		SectionsFeedback         any `mapstructure:"sections_feedback"`
		BulletImprovements       any `mapstructure:"bullet_improvements"`
		SuggestedProjects        any `mapstructure:"suggested_projects"`
		CertificationSuggestions any `mapstructure:"certification_suggestions"`
		JobSuggestions           any `mapstructure:"job_suggestions"`
	}
	_ = decodeInto(payload, resumeAliases, &raw)

	out := career.ResumeAnalysis{
		TargetRole:               firstNonEmpty(asString(raw.TargetRole), targetRole),
		ATSScorePercent:          percent(raw.ATSScorePercent),
		MissingKeywords:          asStrings(raw.MissingKeywords),
		SectionsFeedback:         sectionsFeedback(raw.SectionsFeedback),
		BulletImprovements:       asStrings(raw.BulletImprovements),
		SuggestedProjects:        asStrings(raw.SuggestedProjects),
		CertificationSuggestions: asStrings(raw.CertificationSuggestions),
		JobSuggestions:           jobSuggestions(raw.JobSuggestions, resumeText),
	}

	if len(out.JobSuggestions) == 0 {
		out.JobSuggestions = heuristic.SuggestJobs(resumeText, targetRole)
	}

	return out
}

func sectionsFeedback(v any) career.SectionsFeedback {
	var raw struct {
		Summary    any `mapstructure:"summary"`
		Experience any `mapstructure:"experience"`
		Skills     any `mapstructure:"skills"`
		Education  any `mapstructure:"education"`
	}
	_ = decodeInto(v, sectionAliases, &raw)

	return career.SectionsFeedback{
		Summary:    asString(raw.Summary),
		Experience: asString(raw.Experience),
		Skills:     asString(raw.Skills),
		Education:  asString(raw.Education),
	}
}

func jobSuggestions(v any, resumeText string) []career.JobSuggestion {
	items := asList(v)
	out := make([]career.JobSuggestion, 0, len(items))
	for _, item := range items {
		var raw struct {
			Title  any `mapstructure:"title"`
			Level  any `mapstructure:"level"`
			WhyFit any `mapstructure:"why_fit"`
		}
		if s, ok := item.(string); ok {
			raw.Title = s
		} else if err := decodeInto(item, suggestionAliases, &raw); err != nil {
			continue
		}

		title := asString(raw.Title)
		if title == "" {
			continue
		}

		level := strings.ToLower(asString(raw.Level))
		if !levels[level] {
			level = heuristic.DetectLevel(resumeText)
		}

		out = append(out, career.JobSuggestion{Title: title, Level: level, WhyFit: asString(raw.WhyFit)})
	}
	return out
}
