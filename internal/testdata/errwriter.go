package testdata

// ErrWriter is an io.Writer that accepts Limit bytes and then returns Err, reporting a short write for the call that
// crosses the limit.
type ErrWriter struct {
	Limit int
	Err   error
}

func (e *ErrWriter) Write(p []byte) (n int, err error) {
	if len(p) <= e.Limit {
		e.Limit -= len(p)
		return len(p), nil
	}
	n, e.Limit = e.Limit, 0
	return n, e.Err
}
