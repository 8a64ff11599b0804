package content

import "github.com/fellrun/content-pipeline/internal/port"

// FailureDetail ties a failed file to the entry it belongs to.
type FailureDetail struct {
	Slug   string
	Result port.FileResult
}

// BuildSummary aggregates per-entry reports into build-level counts, so the
// build can surface an exact account of what happened instead of leaving the
// outcome scattered across log lines.
type BuildSummary struct {
	Reports []*port.EntryReport
}

func (s *BuildSummary) Add(report *port.EntryReport) {
	s.Reports = append(s.Reports, report)
}

func (s *BuildSummary) Count(status port.FileStatus) int {
	n := 0
	for _, r := range s.Reports {
		n += r.Count(status)
	}
	return n
}

func (s *BuildSummary) BytesUploaded() int64 {
	var total int64
	for _, r := range s.Reports {
		for _, res := range r.Results {
			total += res.BytesUploaded
		}
	}
	return total
}

func (s *BuildSummary) Failures() []FailureDetail {
	var failures []FailureDetail
	for _, r := range s.Reports {
		for _, res := range r.Results {
			if res.Status == port.FileFailed {
				failures = append(failures, FailureDetail{Slug: r.Slug, Result: res})
			}
		}
	}
	return failures
}
