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

package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/dnote/diffcheck/pkg/server/views"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidForm is an error for a form that cannot be decoded
	ErrInvalidForm = errors.New("Invalid form data")
	// ErrInvalidJSON is an error for a request payload that cannot be decoded
	ErrInvalidJSON = errors.New("Invalid request payload")
)

// messageInternalError is shown to users instead of the details of a server error
const messageInternalError = "Something went wrong. Please try again."

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// the forms carry the CSRF token besides their own fields
	d.IgnoreUnknownKeys(true)

	return d
}

// parseForm decodes the form of the request into dst. Multipart forms keep up
// to maxMemory bytes of their files in memory.
func parseForm(r *http.Request, dst interface{}, maxMemory int64) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validate.ErrInputTooLarge
		}

		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("parsing form")
		return ErrInvalidForm
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("decoding form")
		return ErrInvalidForm
	}

	return nil
}

// decodeJSON decodes the JSON payload of the request into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validate.ErrInputTooLarge
		}

		return ErrInvalidJSON
	}

	return nil
}

// getStatusCode returns the HTTP status code for the given error
func getStatusCode(err error) int {
	switch errors.Cause(err) {
	case compare.ErrEmptyInputs,
		validate.ErrInputTooLarge,
		validate.ErrTooManyLines,
		validate.ErrFileTooLarge,
		validate.ErrUnsupportedFileType,
		render.ErrInvalidViewMode,
		ErrInvalidForm,
		ErrInvalidJSON:
		return http.StatusBadRequest
	case app.ErrSnapshotNotFound, app.ErrSnapshotsDisabled:
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

// getUserMessage returns the message of the given error that can be shown to users
func getUserMessage(err error, statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return messageInternalError
	}

	return err.Error()
}

// handleHTMLError renders the view with an alert for the given error
func handleHTMLError(w http.ResponseWriter, r *http.Request, err error, msg string, v *views.View, d views.Data) {
	statusCode := getStatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
	}

	d.PutAlert(views.AlertLvlError, getUserMessage(err, statusCode))
	v.Render(w, r, &d, statusCode)
}

// errorResponse is the payload of an API error
type errorResponse struct {
	Message string `json:"message"`
}

// handleJSONError responds with the JSON payload for the given error
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := getStatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
	}

	respondJSON(w, statusCode, errorResponse{Message: getUserMessage(err, statusCode)})
}

// respondJSON encodes the given payload as the response body
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}
