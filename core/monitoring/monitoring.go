package monitoring

import "time"

// Monitor reports errors to an external tracker. Handlers tag captures with
// the analysis kind so findings group by endpoint.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Flush(timeout time.Duration)
}

// NopMonitor drops every report. It stays installed until Init provides a
// real backend, so call sites never nil-check.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init installs the process-wide monitor. Nil keeps the current one.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// CaptureException forwards err and its tags to the installed monitor.
func CaptureException(err error, tags map[string]string) {
	current.CaptureException(err, tags)
}

// Flush blocks until buffered reports are delivered or the timeout expires.
func Flush(timeout time.Duration) {
	current.Flush(timeout)
}
