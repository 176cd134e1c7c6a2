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

// Package testutils provides utilities used in tests
package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dnote/diffcheck/pkg/server/database"
	"github.com/dnote/diffcheck/pkg/server/helpers"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitMemoryDB creates an in-memory SQLite database with the migrations applied
func InitMemoryDB(t *testing.T) *gorm.DB {
	// Use file-based in-memory database with unique UUID per test to avoid sharing
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatalf("failed to generate UUID for test database: %v", err)
	}
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid)
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := database.Migrate(db, database.DriverSqlite); err != nil {
		t.Fatalf("failed to migrate in-memory database: %v", err)
	}

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// MustUUID generates a UUID and fails the test on error
func MustUUID(t *testing.T) string {
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatal(errors.Wrap(err, "Failed to generate UUID"))
	}
	return uuid
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		// Do not follow redirects so that the redirects themselves can be tested
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MakeJSONReq makes an HTTP request with the JSON encoding of the given payload
func MakeJSONReq(endpoint, method, path string, payload interface{}) *http.Request {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(errors.Wrap(err, "marshalling payload"))
	}

	req := MakeReq(endpoint, method, path, string(b))
	req.Header.Set("Content-Type", "application/json")

	return req
}

// MakeFormReq makes an HTTP request and returns a response
func MakeFormReq(endpoint, method, path string, data url.Values) *http.Request {
	req := MakeReq(endpoint, method, path, data.Encode())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// ReadBody reads the body of the given response
func ReadBody(t *testing.T, res *http.Response) string {
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading body"))
	}

	return string(b)
}

// MustDecodeJSON decodes the JSON body of the given response into v
func MustDecodeJSON(t *testing.T, res *http.Response, v interface{}) {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatal(errors.Wrap(err, "decoding JSON payload"))
	}
}

// GetCookieByName returns a cookie with the given name
func GetCookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	var ret *http.Cookie

	for i := 0; i < len(cookies); i++ {
		if cookies[i].Name == name {
			ret = cookies[i]
			break
		}
	}

	return ret
}
