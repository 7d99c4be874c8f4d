// Copyright 2016 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog provides a logging interface for grasch packages.
package clog

import (
	"fmt"
	"log"
	"sync/atomic"
)

// Logger is the clog logging interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Leveler is implemented by loggers that manage their own verbosity.
type Leveler interface {
	V(level int) bool
	SetV(level int)
}

var logger Logger = stdlog{}

// SetLogger set the clog logging implementation.
func SetLogger(l Logger) { logger = l }

var verbosity int32

// V returns whether the current clog verbosity is above the specified level.
func V(level int) bool {
	if lv, ok := logger.(Leveler); ok {
		return lv.V(level)
	}
	return int(atomic.LoadInt32(&verbosity)) >= level
}

// SetV sets the clog verbosity level.
func SetV(level int) {
	if lv, ok := logger.(Leveler); ok {
		lv.SetV(level)
		return
	}
	atomic.StoreInt32(&verbosity, int32(level))
}

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Warningf logs warning level messages.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Errorf logs error level messages.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}

// Fatalf logs fatal messages and terminates the program.
func Fatalf(format string, args ...interface{}) {
	if logger != nil {
		logger.Fatalf(format, args...)
	}
}

// Recorder is a Logger that keeps messages in memory. It is used in tests.
type Recorder struct {
	Lines []string
}

func (r *Recorder) add(lvl, format string, args []interface{}) {
	r.Lines = append(r.Lines, lvl+": "+fmt.Sprintf(format, args...))
}

func (r *Recorder) Infof(format string, args ...interface{})    { r.add("INFO", format, args) }
func (r *Recorder) Warningf(format string, args ...interface{}) { r.add("WARN", format, args) }
func (r *Recorder) Errorf(format string, args ...interface{})   { r.add("ERROR", format, args) }
func (r *Recorder) Fatalf(format string, args ...interface{})   { r.add("FATAL", format, args) }

// stdlog wraps the standard library logger.
type stdlog struct{}

func (stdlog) Infof(format string, args ...interface{})    { log.Printf(format, args...) }
func (stdlog) Warningf(format string, args ...interface{}) { log.Printf("WARN: "+format, args...) }
func (stdlog) Errorf(format string, args ...interface{})   { log.Printf("ERROR: "+format, args...) }
func (stdlog) Fatalf(format string, args ...interface{})   { log.Fatalf("FATAL: "+format, args...) }
