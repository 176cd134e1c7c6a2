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

package assets

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
)

func TestGetStaticFS(t *testing.T) {
	fsys, err := GetStaticFS()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"500.html", "style.css", "app.js"} {
		_, err := fs.Stat(fsys, name)
		assert.Equal(t, err, nil, name+" should be at the root")
	}
}

func TestMustGetHTTP500ErrorPage(t *testing.T) {
	assert.Contains(t, string(MustGetHTTP500ErrorPage()), "Something went wrong", "page mismatch")
}

func TestNewStaticHandler(t *testing.T) {
	h, err := NewStaticHandler("/static/")
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest("GET", "/static/style.css", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusOK, "status code mismatch")
	assert.Equal(t, w.Header().Get("Cache-Control"), "public, max-age=3600", "cache header mismatch")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css", "content type mismatch")

	r = httptest.NewRequest("GET", "/static/missing.css", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusNotFound, "missing file status code mismatch")
}
