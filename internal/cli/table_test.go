package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"#", "HEX", "RGB"})
	table.AddRow([]string{"1", "#ff0000", "rgb(255, 0, 0)"})
	table.AddRow([]string{"2", "#00ff00", "rgb(0, 255, 0)"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, separator, 2 rows), got %d:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "HEX") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator line = %q", lines[1])
	}

	// All hex cells start in the same column.
	idx := strings.Index(lines[2], "#ff0000")
	if idx < 0 {
		t.Fatalf("row missing hex cell: %q", lines[2])
	}
	if got := strings.Index(lines[3], "#00ff00"); got != idx {
		t.Errorf("hex column misaligned: %d vs %d", got, idx)
	}
}

func TestTableRenderANSILastColumn(t *testing.T) {
	// An ANSI-coloured last column must not widen the column or gain
	// trailing padding.
	table := NewTable([]string{"HEX", "PREVIEW"})
	table.AddRow([]string{"#ff0000", "\x1b[48;2;255;0;0m        \x1b[0m"})

	out := table.Render()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("line has trailing spaces: %q", line)
		}
	}
	if !strings.Contains(out, "\x1b[48;2;255;0;0m") {
		t.Error("rendered table lost the ANSI escape sequence")
	}
}

func TestTableShortRow(t *testing.T) {
	table := NewTable([]string{"A", "B", "C"})
	table.AddRow([]string{"only"})

	out := table.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("short row missing from output:\n%s", out)
	}
}

func TestTableEmpty(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("empty table rendered %q", out)
	}
}
