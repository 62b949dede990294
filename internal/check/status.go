package check

// Status is the four-state result a monitoring plugin reports to its
// supervisor through the process exit code.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ExitCode returns the supervisor exit code for the status.
func (s Status) ExitCode() int {
	return int(s)
}
