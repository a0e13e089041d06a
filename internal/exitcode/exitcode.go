package exitcode

const (
	Success        = 0
	UsageError     = 1
	InputError     = 2
	DBConnError    = 3
	CopyError      = 4
	OutputError    = 5
	PartialSuccess = 6
)
