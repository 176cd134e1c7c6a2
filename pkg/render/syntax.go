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
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
)

// DefaultSyntaxStyle is the chroma style used for the syntax stylesheet
const DefaultSyntaxStyle = "github"

// classChanged is the class of the changed segments of a paired line
const classChanged = "chg"

// Lexer returns the chroma lexer for the given file name or language name.
// It returns nil if no lexer is known for the hint.
func Lexer(hint string) chroma.Lexer {
	if hint == "" {
		return nil
	}

	lexer := lexers.Match(hint)
	if lexer == nil {
		lexer = lexers.Get(hint)
	}
	if lexer == nil {
		return nil
	}

	return chroma.Coalesce(lexer)
}

// SyntaxCSS returns the stylesheet for the token classes of the given chroma style
func SyntaxCSS(style string) (string, error) {
	var sb strings.Builder

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, styles.Get(style)); err != nil {
		return "", errors.Wrap(err, "writing css")
	}

	return sb.String(), nil
}

func writeSpan(sb *strings.Builder, class, text string) {
	if class == "" {
		sb.WriteString(template.HTMLEscapeString(text))
		return
	}

	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`">`)
	sb.WriteString(template.HTMLEscapeString(text))
	sb.WriteString(`</span>`)
}

func joinClass(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}

	return a + " " + b
}

// highlightSegments returns the escaped HTML of a line made of the given
// segments. Changed segments are wrapped in a span, and every token is
// classed if a lexer is given.
func highlightSegments(lexer chroma.Lexer, segs []Segment) template.HTML {
	var sb strings.Builder

	if lexer == nil {
		for _, s := range segs {
			if s.Changed {
				writeSpan(&sb, classChanged, s.Text)
			} else {
				writeSpan(&sb, "", s.Text)
			}
		}

		return template.HTML(sb.String())
	}

	var text strings.Builder
	for _, s := range segs {
		text.WriteString(s.Text)
	}

	it, err := lexer.Tokenise(nil, text.String())
	if err != nil {
		return highlightSegments(nil, segs)
	}

	// rest of the current segment
	segIdx := 0
	var segRest string
	if len(segs) > 0 {
		segRest = segs[0].Text
	}

	for tok := it(); tok != chroma.EOF; tok = it() {
		value := tok.Value
		tokClass := chroma.StandardTypes[tok.Type]

		// lexers may append a newline the line does not have
		for value != "" && segIdx < len(segs) {
			n := len(value)
			if len(segRest) < n {
				n = len(segRest)
			}

			class := tokClass
			if segs[segIdx].Changed {
				class = joinClass(class, classChanged)
			}
			writeSpan(&sb, class, value[:n])

			value = value[n:]
			segRest = segRest[n:]
			if segRest == "" {
				segIdx++
				if segIdx < len(segs) {
					segRest = segs[segIdx].Text
				}
			}
		}
	}

	for ; segIdx < len(segs); segIdx++ {
		class := ""
		if segs[segIdx].Changed {
			class = classChanged
		}
		writeSpan(&sb, class, segRest)

		if segIdx+1 < len(segs) {
			segRest = segs[segIdx+1].Text
		}
	}

	return template.HTML(sb.String())
}
