package domain

// UsageError wraps bad or missing command-line argument errors
type UsageError struct {
	Err error
}

func (u UsageError) Error() string {
	return u.Err.Error()
}

// IOError wraps log-file open failures
type IOError struct {
	Err error
}

func (i IOError) Error() string {
	return i.Err.Error()
}

// ParseError wraps malformed or truncated log content errors
type ParseError struct {
	Err error
}

func (p ParseError) Error() string {
	return p.Err.Error()
}
