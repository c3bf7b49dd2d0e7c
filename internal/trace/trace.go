// SPDX-License-Identifier: MPL-2.0

// Package trace collects the ordered, human-readable log lines of one
// inspection run for inclusion in the final report.
package trace

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Collector is an append-only trace log. One Collector belongs to one
// inspection run; Lines is safe to call at any point and returns the
// lines recorded so far in order.
type Collector struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	logger *log.Logger
}

// New returns an empty collector.
func New() *Collector {
	c := &Collector{}
	c.logger = log.NewWithOptions(&c.buf, log.Options{
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.DebugLevel,
	})
	return c
}

// Info records an informational line.
func (c *Collector) Info(msg string, kv ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Info(msg, kv...)
}

// Warning records a warning line.
func (c *Collector) Warning(msg string, kv ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Warn(msg, kv...)
}

// Notice records a debug-level line.
func (c *Collector) Notice(msg string, kv ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Debug(msg, kv...)
}

// Lines returns the recorded lines in order.
func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw := strings.TrimRight(c.buf.String(), "\n")
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "\n")
}
