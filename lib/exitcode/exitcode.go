// Package exitcode exports cldimg's exit status numbers.
package exitcode

const (
	// Success is returned when cldimg finished without error.
	Success = iota
	// UsageError is returned when there was a syntax or usage error in the arguments.
	UsageError
	// UncategorizedError is returned for any error not categorised otherwise.
	UncategorizedError
	// FileNotFound is returned when the config file or an input page is not found.
	FileNotFound
	// BuildError is returned when the options given can't make a delivery URL.
	BuildError
)
