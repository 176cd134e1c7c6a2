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
	"html/template"
	"io"
	"strconv"

	"github.com/alecthomas/chroma/v2"
	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/pkg/errors"
)

var htmlTemplates = template.Must(template.New("diff").Funcs(template.FuncMap{
	"num": func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	},
}).Parse(`
{{- define "header" -}}
<div class="diff-file-header"><span class="diff-file-name">{{.OldName}}</span> &rarr; <span class="diff-file-name">{{.NewName}}</span></div>
{{- end -}}

{{- define "line-by-line" -}}
<div class="diff-wrapper">
{{template "header" .}}
{{- if not .Hunks}}
<p class="diff-empty">No differences found.</p>
{{- else}}
<table class="diff diff-line-by-line chroma">
{{- range .Hunks}}
<tbody>
<tr class="diff-hunk"><td class="diff-num"></td><td class="diff-num"></td><td class="diff-code">{{.Header}}</td></tr>
{{- range .Rows}}
<tr class="diff-{{.Kind}}"><td class="diff-num">{{num .OldNo}}</td><td class="diff-num">{{num .NewNo}}</td><td class="diff-code"><span class="diff-op">{{.Op}}</span>{{.Content}}</td></tr>
{{- end}}
</tbody>
{{- end}}
</table>
{{- end}}
</div>
{{- end -}}

{{- define "cell" -}}
{{- if . -}}
<td class="diff-num">{{num .Number}}</td><td class="diff-code diff-{{.Kind}}"><span class="diff-op">{{.Op}}</span>{{.Content}}</td>
{{- else -}}
<td class="diff-num"></td><td class="diff-code diff-empty"></td>
{{- end -}}
{{- end -}}

{{- define "side-by-side" -}}
<div class="diff-wrapper">
{{template "header" .}}
{{- if not .Hunks}}
<p class="diff-empty">No differences found.</p>
{{- else}}
<table class="diff diff-side-by-side chroma">
{{- range .Hunks}}
<tbody>
<tr class="diff-hunk"><td colspan="4" class="diff-code">{{.Header}}</td></tr>
{{- range .Pairs}}
<tr>{{template "cell" .Old}}{{template "cell" .New}}</tr>
{{- end}}
</tbody>
{{- end}}
</table>
{{- end}}
</div>
{{- end -}}
`))

type htmlCell struct {
	Number  int
	Op      string
	Kind    string
	Content template.HTML
}

type htmlRow struct {
	Kind    string
	OldNo   int
	NewNo   int
	Op      string
	Content template.HTML
}

type htmlPair struct {
	Old *htmlCell
	New *htmlCell
}

type htmlHunk struct {
	Header string
	Rows   []htmlRow
	Pairs  []htmlPair
}

type htmlData struct {
	OldName string
	NewName string
	Hunks   []htmlHunk
}

// HTML renders diffs as an HTML fragment
type HTML struct {
	// Language is a file name or a language name used to pick the syntax
	// highlighter. No highlighting is done if it is empty or unknown.
	Language string
	// Inline highlights the changed segments of paired lines
	Inline bool
}

// NewHTML returns an HTML renderer highlighting the syntax of the given language
func NewHTML(language string) *HTML {
	return &HTML{
		Language: language,
		Inline:   true,
	}
}

func kindOf(op diff.Op) string {
	if op == diff.OpDelete {
		return "del"
	}

	return "ins"
}

// segments returns the segments of every row of a hunk, keyed by the row
func (h *HTML) segments(rows []Row) map[*Row][]Segment {
	ret := map[*Row][]Segment{}

	for i := range rows {
		ret[&rows[i]] = plainSegments(rows[i].Text)
	}

	if h.Inline {
		for _, p := range pairRows(rows) {
			if p.Old != nil && p.New != nil {
				ret[p.Old], ret[p.New] = InlineSpans(p.Old.Text, p.New.Text)
			}
		}
	}

	return ret
}

func (h *HTML) buildHunk(lexer chroma.Lexer, hunk diff.Hunk, mode ViewMode) htmlHunk {
	ret := htmlHunk{Header: diff.HunkHeader(hunk)}

	rows := Rows(hunk)
	segs := h.segments(rows)

	if mode == SideBySide {
		cell := func(r *Row) *htmlCell {
			if r == nil {
				return nil
			}

			return &htmlCell{
				Number:  r.Number,
				Op:      string(r.Op),
				Kind:    kindOf(r.Op),
				Content: highlightSegments(lexer, segs[r]),
			}
		}

		for _, p := range pairRows(rows) {
			ret.Pairs = append(ret.Pairs, htmlPair{Old: cell(p.Old), New: cell(p.New)})
		}

		return ret
	}

	for i := range rows {
		r := &rows[i]

		row := htmlRow{
			Kind:    kindOf(r.Op),
			Op:      string(r.Op),
			Content: highlightSegments(lexer, segs[r]),
		}
		if r.Op == diff.OpDelete {
			row.OldNo = r.Number
		} else {
			row.NewNo = r.Number
		}

		ret.Rows = append(ret.Rows, row)
	}

	return ret
}

// Render writes the unified diff as an HTML fragment in the given view mode
func (h *HTML) Render(w io.Writer, unified string, mode ViewMode) error {
	hunks, err := diff.Parse(unified)
	if err != nil {
		return errors.Wrap(err, "parsing unified diff")
	}

	lexer := Lexer(h.Language)

	data := htmlData{
		OldName: diff.OriginalName,
		NewName: diff.ChangedName,
	}
	for _, hunk := range hunks {
		data.Hunks = append(data.Hunks, h.buildHunk(lexer, hunk, mode))
	}

	name := string(LineByLine)
	if mode == SideBySide {
		name = string(SideBySide)
	}

	if err := htmlTemplates.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrap(err, "executing template")
	}

	return nil
}
