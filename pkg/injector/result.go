package injector

// Status is the outcome of processing one target
type Status string

const (
	// StatusWritten means the output file was (re)written
	StatusWritten Status = "written"
	// StatusPlanned means a dry run computed the output without writing it
	StatusPlanned Status = "planned"
	// StatusCurrent means the output already matches the template
	StatusCurrent Status = "current"
	// StatusStale means the output differs from what would be written
	StatusStale Status = "stale"
	// StatusMissing means the output does not exist yet
	StatusMissing Status = "missing"
	// StatusFailed means processing stopped with Err
	StatusFailed Status = "failed"
)

// Result holds the outcome of one target
type Result struct {
	Target   string
	Template string
	Output   string
	Status   Status

	// Changed reports whether the generated content differs from what was
	// on disk before this run.
	Changed bool

	// Diff is a unified diff from the previous output to the generated one.
	// Empty when nothing changed.
	Diff string

	// Warnings are non-fatal format check findings
	Warnings []string

	Err error
}
