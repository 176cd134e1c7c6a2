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

package helpers

import (
	"net/url"
	"strings"
)

// GetPath returns a path with the given query string
func GetPath(path string, q *url.Values) string {
	if q == nil || len(*q) == 0 {
		return path
	}

	return path + "?" + q.Encode()
}

// AbsoluteURL joins the given base URL and path
func AbsoluteURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + path
}
