package letterbox

import (
	"path/filepath"
	"strings"

	"letterbox/internal/aspect"
)

// OutputPrefix is prepended to the input file name to form the output name.
const OutputPrefix = "LETTERBOXED_"

// Plan is a fully resolved ffmpeg invocation for one input.
type Plan struct {
	Input  string
	Output string
	Source aspect.Resolution
	Target TargetFrame
	Filter string
	Binary string
	Args   []string
}

// PlanOptions controls how plans are built.
type PlanOptions struct {
	Binary    string
	Overwrite bool
}

// OutputPath places LETTERBOXED_+base(input) in the input's directory.
func OutputPath(input string) string {
	return filepath.Join(filepath.Dir(input), OutputPrefix+filepath.Base(input))
}

// BuildPlan resolves the output path, target frame, filter, and ffmpeg
// arguments for input.
func BuildPlan(input string, source aspect.Resolution, opts PlanOptions) Plan {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	target := SelectTarget(source)
	plan := Plan{
		Input:  input,
		Output: OutputPath(input),
		Source: source,
		Target: target,
		Filter: FilterExpression(target),
		Binary: binary,
	}

	overwrite := "-n"
	if opts.Overwrite {
		overwrite = "-y"
	}
	plan.Args = []string{
		"-hide_banner",
		overwrite,
		"-i", plan.Input,
		"-filter:v", plan.Filter,
		plan.Output,
	}
	return plan
}

// CommandLine renders the plan as a shell-quoted command for display.
func (p Plan) CommandLine() string {
	parts := make([]string, 0, len(p.Args)+1)
	parts = append(parts, shellQuote(p.Binary))
	for _, arg := range p.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	safe := true
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:=+,@%", r):
		default:
			safe = false
		}
		if !safe {
			break
		}
	}
	if safe {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
