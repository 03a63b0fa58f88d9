package normalize

import (
	"strings"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/heuristic"
)

// Market normalizes market insights for role in region.
func Market(payload any, role, region string) career.MarketInsights {
	var raw struct {
		Role           any `mapstructure:"role"`
		Region         any `mapstructure:"region"`
		DemandTrend    any `mapstructure:"demand_trend"`
		SalaryByRegion any `mapstructure:"salary_by_region"`
		TopSkills      any `mapstructure:"top_skills"`
		GrowthForecast any `mapstructure:"growth_forecast"`
	}
	_ = decodeInto(payload, marketAliases, &raw)

	out := career.MarketInsights{
		Role:           firstNonEmpty(asString(raw.Role), role),
		Region:         firstNonEmpty(asString(raw.Region), region),
		DemandTrend:    demandTrend(raw.DemandTrend),
		SalaryByRegion: salaries(raw.SalaryByRegion),
		TopSkills:      asStrings(raw.TopSkills),
		GrowthForecast: growthForecast(raw.GrowthForecast),
	}

	if len(out.TopSkills) == 0 {
		out.TopSkills = heuristic.SkillsFor(out.Role)
	}

	return out
}

func demandTrend(v any) career.DemandTrend {
	var raw struct {
		Years       any `mapstructure:"years"`
		DemandIndex any `mapstructure:"demand_index"`
	}
	_ = decodeInto(v, trendAliases, &raw)

	index := asInts(raw.DemandIndex)
	for i, n := range index {
		index[i] = percent(n)
	}

	return career.DemandTrend{Years: asInts(raw.Years), DemandIndex: index}
}

func salaries(v any) []career.RegionSalary {
	items := asList(v)
	out := make([]career.RegionSalary, 0, len(items))
	for _, item := range items {
		var raw struct {
			Region    any `mapstructure:"region"`
			AvgSalary any `mapstructure:"avg_salary"`
		}
		if err := decodeInto(item, salaryAliases, &raw); err != nil {
			continue
		}
		region := asString(raw.Region)
		if region == "" {
			continue
		}
		out = append(out, career.RegionSalary{Region: region, AvgSalary: nonNegative(raw.AvgSalary)})
	}
	return out
}

func growthForecast(v any) career.GrowthForecast {
	var raw struct {
		FiveYearOutlook       any `mapstructure:"five_year_outlook"`
		AutomationRiskPercent any `mapstructure:"automation_risk_percent"`
		Notes                 any `mapstructure:"notes"`
	}
	if s, ok := v.(string); ok {
		return career.GrowthForecast{FiveYearOutlook: strings.TrimSpace(s)}
	}
	_ = decodeInto(v, forecastAliases, &raw)

	return career.GrowthForecast{
		FiveYearOutlook:       asString(raw.FiveYearOutlook),
		AutomationRiskPercent: percent(raw.AutomationRiskPercent),
		Notes:                 asString(raw.Notes),
	}
}

// Compare normalizes a two-role comparison. Requested role names fill in
// missing entries so the response always names both roles.
func Compare(payload any, roleA, roleB string) career.Comparison {
	var raw struct {
		Roles   any `mapstructure:"roles"`
		Summary any `mapstructure:"summary"`
	}
	if err := decodeInto(payload, compareAliases, &raw); err != nil {
		if list, ok := payload.([]any); ok {
			raw.Roles = list
		}
	}

	requested := []string{strings.TrimSpace(roleA), strings.TrimSpace(roleB)}

	profiles := make([]career.RoleProfile, 0, 2)
	for _, item := range asList(raw.Roles) {
		var p struct {
			Role                  any `mapstructure:"role"`
			SalaryRange           any `mapstructure:"salary_range"`
			DemandGrowth          any `mapstructure:"demand_growth"`
			WorkLifeBalance       any `mapstructure:"work_life_balance"`
			Education             any `mapstructure:"education"`
			TopSkills             any `mapstructure:"top_skills"`
			AutomationRiskPercent any `mapstructure:"automation_risk_percent"`
		}
		if err := decodeInto(item, profileAliases, &p); err != nil {
			continue
		}

		name := asString(p.Role)
		if name == "" && len(profiles) < len(requested) {
			name = requested[len(profiles)]
		}

		profiles = append(profiles, career.RoleProfile{
			Role:                  name,
			SalaryRange:           asString(p.SalaryRange),
			DemandGrowth:          asString(p.DemandGrowth),
			WorkLifeBalance:       asString(p.WorkLifeBalance),
			Education:             asString(p.Education),
			TopSkills:             asStrings(p.TopSkills),
			AutomationRiskPercent: percent(p.AutomationRiskPercent),
		})
	}

	for len(profiles) < len(requested) {
		name := requested[len(profiles)]
		if name == "" {
			break
		}
		profiles = append(profiles, career.RoleProfile{Role: name})
	}

	for i := range profiles {
		if len(profiles[i].TopSkills) == 0 {
			profiles[i].TopSkills = heuristic.SkillsFor(profiles[i].Role)
		}
	}

	return career.Comparison{Roles: profiles, Summary: asString(raw.Summary)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
