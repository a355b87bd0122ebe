package autodoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

func TestHTMLListOmitsZeroFields(t *testing.T) {
	var buf bytes.Buffer
	if err := HTMLList(&buf, combat.DefaultCatalog()); err != nil {
		t.Fatalf("HTMLList: %v", err)
	}
	out := buf.String()
	want := "<li><action>LUNGE</action>: league=1 energy=<constant>-3</constant> energyTransfer=<constant>5</constant> distance=<constant>+3</constant></li>\n"
	if !strings.Contains(out, want) {
		t.Fatalf("LUNGE line missing, got:\n%s", out)
	}
	if !strings.Contains(out, "<li><action>BREAK</action>: league=1 energy=<constant>+2</constant></li>\n") {
		t.Fatalf("BREAK line wrong, got:\n%s", out)
	}
	if n := strings.Count(out, "<li>"); n != combat.DefaultCatalog().Len() {
		t.Fatalf("items got=%d want=%d", n, combat.DefaultCatalog().Len())
	}
	if !strings.HasPrefix(out, "<ul>\n") || !strings.HasSuffix(out, "</ul>\n") {
		t.Fatalf("list not wrapped")
	}
}

func TestHTMLTableRows(t *testing.T) {
	var buf bytes.Buffer
	if err := HTMLTable(&buf, combat.DefaultCatalog()); err != nil {
		t.Fatalf("HTMLTable: %v", err)
	}
	out := buf.String()
	if got, want := strings.Count(out, "<tr>"), combat.DefaultCatalog().Len()+1; got != want {
		t.Fatalf("rows got=%d want=%d", got, want)
	}
	fleche := "<tr><td><action>FLECHE</action></td><td>7</td><td><constant>-5</constant></td><td><constant>7</constant></td>" +
		"<td><constant>+2</constant></td><td><constant>+1</constant></td><td><constant>0</constant></td><td>2</td></tr>"
	if !strings.Contains(out, fleche) {
		t.Fatalf("FLECHE row missing, got:\n%s", out)
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, combat.DefaultCatalog(), FormatMarkdown); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != combat.DefaultCatalog().Len()+2 {
		t.Fatalf("lines got=%d", len(lines))
	}
	if lines[len(lines)-1] != "| DETOX | 11 | -1 | 0 | 0 | 0 | -1 | 3 |" {
		t.Fatalf("last row got=%q", lines[len(lines)-1])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, combat.DefaultCatalog(), "pdf"); err == nil {
		t.Fatalf("expected an error")
	}
}
