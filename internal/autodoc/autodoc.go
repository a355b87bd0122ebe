// Package autodoc renders the action catalog for the player-facing rules
// page. Leagues are shown one-based, the way players count them.
package autodoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

const (
	FormatHTMLList  = "html-list"
	FormatHTMLTable = "html-table"
	FormatMarkdown  = "markdown"
)

var Formats = []string{FormatHTMLList, FormatHTMLTable, FormatMarkdown}

func delta(d int) string {
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

func constant(s string) string { return "<constant>" + s + "</constant>" }

// HTMLList writes one <li> per action, omitting zero fields.
func HTMLList(w io.Writer, cat *combat.Catalog) error {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, a := range cat.Actions() {
		fmt.Fprintf(&b, "<li><action>%s</action>: league=%d", a.Name, a.League+1)
		if a.Energy != 0 {
			b.WriteString(" energy=" + constant(delta(a.Energy)))
		}
		if a.EnergyTransfer != 0 {
			b.WriteString(" energyTransfer=" + constant(strconv.Itoa(a.EnergyTransfer)))
		}
		if a.Move != 0 {
			b.WriteString(" move=" + constant(delta(a.Move)))
		}
		if a.Distance != 0 {
			b.WriteString(" distance=" + constant(delta(a.Distance)))
		}
		if a.Drug != 0 {
			b.WriteString(" drug=" + constant(delta(a.Drug)))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var columns = []string{"action", "code", "energy", "energyTransfer", "move", "distance", "drug", "league"}

// HTMLTable writes the whole catalog as a table, every field shown.
func HTMLTable(w io.Writer, cat *combat.Catalog) error {
	var b strings.Builder
	b.WriteString("<table>\n<tr>")
	for _, c := range columns {
		b.WriteString("<th>" + c + "</th>")
	}
	b.WriteString("</tr>\n")
	for _, a := range cat.Actions() {
		b.WriteString("<tr>")
		for _, cell := range row(a) {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func row(a combat.ActionType) []string {
	return []string{
		"<action>" + a.Name + "</action>",
		strconv.Itoa(int(a.Code)),
		constant(delta(a.Energy)),
		constant(strconv.Itoa(a.EnergyTransfer)),
		constant(delta(a.Move)),
		constant(delta(a.Distance)),
		constant(delta(a.Drug)),
		strconv.Itoa(a.League + 1),
	}
}

// Markdown writes a plain table for READMEs and wiki pages.
func Markdown(w io.Writer, cat *combat.Catalog) error {
	var b strings.Builder
	b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(columns)) + "\n")
	for _, a := range cat.Actions() {
		fmt.Fprintf(&b, "| %s | %d | %s | %d | %s | %s | %s | %d |\n",
			a.Name, a.Code, delta(a.Energy), a.EnergyTransfer, delta(a.Move), delta(a.Distance), delta(a.Drug), a.League+1)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func Render(w io.Writer, cat *combat.Catalog, format string) error {
	switch format {
	case FormatHTMLList:
		return HTMLList(w, cat)
	case FormatHTMLTable:
		return HTMLTable(w, cat)
	case FormatMarkdown:
		return Markdown(w, cat)
	}
	return fmt.Errorf("autodoc: unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}
