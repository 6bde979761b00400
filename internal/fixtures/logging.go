package fixtures

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type writer struct {
	tb testing.TB
}

var _ io.Writer = (*writer)(nil)

func (w writer) Write(p []byte) (int, error) {
	w.tb.Log(string(p))
	return len(p), nil
}

// NewTestLogger returns a debug level logger writing to the test log.
func NewTestLogger(tb testing.TB, opts ...func(*logrus.Logger)) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)

	for _, opt := range opts {
		opt(l)
	}
	l.SetOutput(writer{tb: tb})

	return l
}
