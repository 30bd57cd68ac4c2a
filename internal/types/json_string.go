// json_string.go
//
// A joke delivery service backed by a relational database
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jokebook.
// jokebook is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jokebook is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jokebook.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"bytes"
	"encoding/json"
)

// JSONString is a string field that remembers whether the JSON value it was
// decoded from was actually a string. Numbers, booleans, arrays and objects
// decode without error but leave NotString set, so handlers can report a
// validation error instead of a parse failure. Falsy values (0, false) count
// as missing, like null and "".
type JSONString struct {
	Value     string
	NotString bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *JSONString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = JSONString{}
		return nil
	}

	if data[0] != '"' {
		*s = JSONString{NotString: !isFalsy(data)}
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = JSONString{Value: v}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s JSONString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// Missing reports an absent, null or empty string value.
func (s JSONString) Missing() bool {
	return !s.NotString && s.Value == ""
}

// String returns the decoded value.
func (s JSONString) String() string {
	return s.Value
}

func isFalsy(data []byte) bool {
	if string(data) == "false" {
		return true
	}
	var n float64
	return json.Unmarshal(data, &n) == nil && n == 0
}
