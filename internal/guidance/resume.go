package guidance

import (
	"context"
	"strings"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/normalize"
)

// AnalyzeResume scores a resume against a target role. Job suggestions come
// from the resume heuristic when the model offers none.
func (s *Service) AnalyzeResume(ctx context.Context, req ResumeRequest) career.ResumeAnalysis {
	resume := strings.TrimSpace(req.ResumeText)
	target := strings.TrimSpace(req.TargetRole)

	payload, degraded := s.ask(ctx, whereResume, render(promptResume, map[string]string{
		"RESUME":          resume,
		"TARGET_ROLE":     target,
		"JOB_DESCRIPTION": strings.TrimSpace(req.JobDescription),
	}))

	result := normalize.Resume(payload, resume, target)
	result.Degradation = degraded
	return result
}
