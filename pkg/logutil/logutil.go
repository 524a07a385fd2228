// Package logutil provides logging utilities.
//
// All loggers share one output, which discards everything until SetOutput or
// SetOutputFile is called.
package logutil

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	out  = io.Discard
	root = newRoot()
)

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// GetLogger gets a logger with the given prefix. The prefix is recorded as the
// "component" field, with surrounding brackets and spaces removed.
func GetLogger(prefix string) *logrus.Entry {
	component := strings.Trim(prefix, "[] ")
	return root.WithField("component", component)
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer. If the old output was a file opened by SetOutputFile, it is
// closed.
func SetOutput(newout io.Writer) {
	if f, ok := out.(*os.File); ok {
		f.Close()
	}
	out = newout
	root.SetOutput(out)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is truncated. SetOutFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}

// SetLevel sets the minimum level of messages that get written. It accepts
// the level names understood by logrus, such as "debug" and "warning".
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(l)
	return nil
}
