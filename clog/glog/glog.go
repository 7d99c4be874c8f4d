// Package glog routes clog output to github.com/golang/glog. Importing it for
// side effects installs the backend.
package glog

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/alastai/grasch-lex/clog"
)

func init() {
	clog.SetLogger(Logger{})
}

// Logger is a clog.Logger and clog.Leveler backed by glog.
type Logger struct{}

var _ clog.Leveler = Logger{}

func (Logger) Infof(format string, args ...interface{}) {
	glog.InfoDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Fatalf(format string, args ...interface{}) {
	glog.FatalDepth(3, fmt.Sprintf(format, args...))
}

func (Logger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

func (Logger) SetV(v int) {
	glog.Warningf("changing log level is not supported; run command with '-v %d' flag", v)
}
