// SPDX-License-Identifier: MPL-2.0

package trace

import (
	"strings"
	"testing"
)

func TestCollectorOrderedLines(t *testing.T) {
	c := New()

	if got := c.Lines(); len(got) != 0 {
		t.Fatalf("fresh collector has lines: %v", got)
	}

	c.Info("opened archive", "path", "FS22_Test.zip")
	c.Warning("map config unreadable")
	c.Notice("icon decoded")

	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "opened archive") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "map config unreadable") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "icon decoded") {
		t.Errorf("line 2 = %q", lines[2])
	}
}
