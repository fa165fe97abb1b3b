/*
Copyright 2026 IONOS Cloud.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package proxmox

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/luthermonson/go-proxmox"
)

var _ proxmox.LeveledLoggerInterface = Logger{}

// Logger implements go-proxmox.LeveledLoggerInterface on top of a logr.Logger.
//
// Methods from the interface are mapped
//   - Errorf = Error
//   - Warnf  = V(0).Info
//   - Infof  = V(2).Info
//   - Debugf = V(4).Info
type Logger struct {
	Sink logr.Logger
}

// NewLogger returns a Logger writing to logger under the name "go-proxmox".
func NewLogger(logger logr.Logger) Logger {
	return Logger{Sink: logger.WithName("go-proxmox")}
}

// Errorf logs message at error level.
func (l Logger) Errorf(format string, args ...interface{}) {
	l.Sink.Error(nil, fmt.Sprintf(format, args...))
}

// Warnf logs message at warn level.
func (l Logger) Warnf(format string, args ...interface{}) {
	l.Sink.Info(fmt.Sprintf(format, args...))
}

// Infof logs message at info level.
func (l Logger) Infof(format string, args ...interface{}) {
	l.Sink.V(2).Info(fmt.Sprintf(format, args...))
}

// Debugf logs message at debug level.
func (l Logger) Debugf(format string, args ...interface{}) {
	if v := l.Sink.V(4); v.Enabled() {
		v.Info(fmt.Sprintf(format, args...))
	}
}
