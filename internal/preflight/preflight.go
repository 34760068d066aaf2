package preflight

import (
	"strings"

	"letterbox/internal/config"
	"letterbox/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Report holds the tool lookups separately from the directory checks.
type Report struct {
	Tools  []deps.Status
	Checks []Result
}

// Failed reports whether a required tool is missing or any check did not pass.
func (r Report) Failed() bool {
	return len(deps.Missing(r.Tools)) > 0 || Failed(r.Checks)
}

// RunAll checks the configured tools, the lock directory and, when dir is
// non-empty, the directory letterboxed files would be written to.
func RunAll(cfg *config.Config, dir string) Report {
	if cfg == nil {
		return Report{}
	}

	report := Report{Tools: CheckSystemDeps(cfg)}
	report.Checks = append(report.Checks, CheckDirectoryAccess("Lock directory", cfg.Paths.LockDir))

	if dir = strings.TrimSpace(dir); dir != "" {
		report.Checks = append(report.Checks,
			CheckDirectoryAccess("Output directory", dir),
			CheckFreeSpace("Free space", dir, 0),
		)
	}
	return report
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
