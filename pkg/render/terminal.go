/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

const (
	// DefaultWidth is the default width of the terminal output in columns
	DefaultWidth = 120
	// minWidth is the narrowest side-by-side layout
	minWidth = 40

	numberWidth = 5
	tabWidth    = 4
	separator   = " │ "
)

type palette struct {
	header   *color.Color
	hunk     *color.Color
	removed  *color.Color
	inserted *color.Color
	// removedMark and insertedMark highlight the changed segments of a paired line
	removedMark  *color.Color
	insertedMark *color.Color
	number       *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header:       color.New(color.Bold),
		hunk:         color.New(color.FgCyan),
		removed:      color.New(color.FgRed),
		inserted:     color.New(color.FgGreen),
		removedMark:  color.New(color.FgHiWhite, color.BgRed),
		insertedMark: color.New(color.FgHiWhite, color.BgGreen),
		number:       color.New(color.FgHiBlack),
	}

	if noColor {
		for _, c := range []*color.Color{p.header, p.hunk, p.removed, p.inserted, p.removedMark, p.insertedMark, p.number} {
			c.DisableColor()
		}
	}

	return p
}

// Terminal renders diffs as text for a terminal
type Terminal struct {
	// Width is the number of columns available to the side-by-side view
	Width int
	// NoColor disables the escape sequences regardless of the terminal
	NoColor bool
	// Inline highlights the changed segments of paired lines
	Inline bool
}

// NewTerminal returns a terminal renderer with the default configuration
func NewTerminal() *Terminal {
	return &Terminal{
		Width:  DefaultWidth,
		Inline: true,
	}
}

// Render writes the unified diff in the given view mode
func (t *Terminal) Render(w io.Writer, unified string, mode ViewMode) error {
	hunks, err := diff.Parse(unified)
	if err != nil {
		return errors.Wrap(err, "parsing unified diff")
	}

	p := newPalette(t.NoColor)

	var sb strings.Builder
	sb.WriteString(p.header.Sprintf("--- a/%s", diff.OriginalName) + "\n")
	sb.WriteString(p.header.Sprintf("+++ b/%s", diff.ChangedName) + "\n")

	for _, h := range hunks {
		sb.WriteString(p.hunk.Sprint(diff.HunkHeader(h)) + "\n")

		switch mode {
		case SideBySide:
			t.writeSideBySide(&sb, p, h)
		default:
			t.writeLineByLine(&sb, p, h)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "writing output")
	}

	return nil
}

func formatNumber(n int) string {
	if n == 0 {
		return strings.Repeat(" ", numberWidth)
	}

	return fmt.Sprintf("%*s", numberWidth, strconv.Itoa(n))
}

func (t *Terminal) writeLineByLine(sb *strings.Builder, p palette, h diff.Hunk) {
	rows := Rows(h)

	spans := map[*Row][]Segment{}
	if t.Inline {
		for _, pair := range pairRows(rows) {
			if pair.Old != nil && pair.New != nil {
				spans[pair.Old], spans[pair.New] = InlineSpans(pair.Old.Text, pair.New.Text)
			}
		}
	}

	for i := range rows {
		r := &rows[i]

		var oldNo, newNo int
		lineColor, markColor := p.inserted, p.insertedMark
		if r.Op == diff.OpDelete {
			oldNo = r.Number
			lineColor, markColor = p.removed, p.removedMark
		} else {
			newNo = r.Number
		}

		sb.WriteString(p.number.Sprint(formatNumber(oldNo) + " " + formatNumber(newNo)))
		sb.WriteString(" ")
		sb.WriteString(lineColor.Sprint(string(r.Op)))

		segs, ok := spans[r]
		if !ok {
			segs = plainSegments(r.Text)
		}
		for _, s := range segs {
			if s.Changed {
				sb.WriteString(markColor.Sprint(s.Text))
			} else {
				sb.WriteString(lineColor.Sprint(s.Text))
			}
		}
		sb.WriteString("\n")
	}
}

// columnWidth returns the width of the text column of each side
func (t *Terminal) columnWidth() int {
	width := t.Width
	if width < minWidth {
		width = minWidth
	}

	side := (width - runewidth.StringWidth(separator)) / 2

	return side - numberWidth - 1
}

func fitColumn(s string, width int) string {
	s = expandTabs(s)

	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// writeSide writes one side of a side-by-side row. The changed segments of
// the row, if any, are highlighted within the fitted column.
func (t *Terminal) writeSide(sb *strings.Builder, p palette, r *Row, segs []Segment, width int) {
	if r == nil {
		sb.WriteString(strings.Repeat(" ", numberWidth+1+width))
		return
	}

	lineColor, markColor := p.inserted, p.insertedMark
	if r.Op == diff.OpDelete {
		lineColor, markColor = p.removed, p.removedMark
	}

	sb.WriteString(p.number.Sprint(formatNumber(r.Number)))
	sb.WriteString(" ")

	fitted := []rune(fitColumn(string(r.Op)+r.Text, width))
	if segs == nil {
		sb.WriteString(lineColor.Sprint(string(fitted)))
		return
	}

	// the fitted column starts with the op and a prefix of the text
	segs = append([]Segment{{Text: string(r.Op)}}, segs...)

	pos := 0
	for _, seg := range segs {
		text := []rune(expandTabs(seg.Text))

		n := 0
		for n < len(text) && pos+n < len(fitted) && fitted[pos+n] == text[n] {
			n++
		}

		c := lineColor
		if seg.Changed {
			c = markColor
		}
		if n > 0 {
			sb.WriteString(c.Sprint(string(fitted[pos : pos+n])))
		}
		pos += n

		if n < len(text) {
			break
		}
	}

	// the ellipsis and the padding
	if pos < len(fitted) {
		sb.WriteString(lineColor.Sprint(string(fitted[pos:])))
	}
}

func (t *Terminal) writeSideBySide(sb *strings.Builder, p palette, h diff.Hunk) {
	width := t.columnWidth()

	for _, pair := range Pairs(h) {
		var oldSegs, newSegs []Segment
		if t.Inline && pair.Old != nil && pair.New != nil {
			oldSegs, newSegs = InlineSpans(pair.Old.Text, pair.New.Text)
		}

		t.writeSide(sb, p, pair.Old, oldSegs, width)
		sb.WriteString(separator)
		t.writeSide(sb, p, pair.New, newSegs, width)
		sb.WriteString("\n")
	}
}
