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

package app

import (
	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/server/log"
)

// CompareParams are the parameters of a comparison
type CompareParams struct {
	Original         string
	Changed          string
	IgnoreWhitespace bool
	ViewMode         render.ViewMode
	// Language is a file name or a language name used to pick a syntax highlighter
	Language string
}

// newComparer returns a comparer rendering HTML for a single request. Each
// request gets its own comparer so that clients do not wait on each other.
func (a *App) newComparer(language string) *compare.Comparer {
	c := compare.New(a.Limits)
	c.Clock = a.Clock
	c.Renderer = render.NewHTML(language)
	c.OnTransition = func(from, to compare.State) {
		log.WithFields(log.Fields{
			"from": from.String(),
			"to":   to.String(),
		}).Debug("Comparison state changed.")
	}

	return c
}

// Compare compares the texts and renders the differences as HTML
func (a *App) Compare(p CompareParams) compare.Result {
	res := a.newComparer(p.Language).Compare(compare.Request{
		Original:         p.Original,
		Changed:          p.Changed,
		IgnoreWhitespace: p.IgnoreWhitespace,
		ViewMode:         p.ViewMode,
	})

	entry := log.WithFields(log.Fields{
		"status":            string(res.Status),
		"hunks":             len(res.Hunks),
		"original_bytes":    len(p.Original),
		"changed_bytes":     len(p.Changed),
		"ignore_whitespace": p.IgnoreWhitespace,
		"duration":          res.Duration,
	})
	if res.Status == compare.StatusFailed {
		entry.ErrorWrap(res.Err, "comparison failed")
	} else {
		entry.Info("Comparison done.")
	}

	return res
}
