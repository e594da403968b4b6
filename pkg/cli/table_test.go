package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_HeadersAndRows(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "DEVICE", "HOST")
	tbl.Row("core-sw1", "10.0.0.1")
	tbl.Row("lab-rtr1", "10.0.0.2")
	tbl.Flush()

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (headers, divider, 2 rows), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "DEVICE") || !strings.Contains(lines[0], "HOST") {
		t.Errorf("header line missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "------") {
		t.Errorf("divider line missing: %q", lines[1])
	}
	if !strings.Contains(lines[2], "core-sw1") {
		t.Errorf("first row missing device: %q", lines[2])
	}
}

func TestTable_EmptyProducesNoOutput(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "DEVICE", "HOST")
	tbl.Flush()

	if buf.Len() != 0 {
		t.Errorf("empty table should produce no output, got %q", buf.String())
	}
}

func TestTable_Prefix(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "NAME").WithPrefix("  ")
	tbl.Row("lab")
	tbl.Flush()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line should carry prefix: %q", line)
		}
	}
}
