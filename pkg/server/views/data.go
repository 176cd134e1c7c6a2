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

package views

const (
	// AlertLvlError is the level of an alert for a failure
	AlertLvlError = "error"
	// AlertLvlSuccess is the level of an alert for a success
	AlertLvlSuccess = "success"
	// AlertLvlInfo is the level of an informative alert
	AlertLvlInfo = "info"
)

// Alert is a message shown on top of a page
type Alert struct {
	Level   string
	Message string
}

// Data is the data passed to a view
type Data struct {
	Title string
	Alert *Alert
	Yield map[string]interface{}
}

// PutAlert sets the alert of the data
func (d *Data) PutAlert(level, message string) {
	d.Alert = &Alert{
		Level:   level,
		Message: message,
	}
}
