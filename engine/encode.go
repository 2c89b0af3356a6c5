// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"bytes"
	"encoding/json"
)

// encodeRow serialises the projected columns, in requested order, into a
// single JSON object. encoding/json on a map would not preserve field
// order, so the object is assembled field by field.
func encodeRow(projection []string, binding map[string]interface{}) []byte {

	var b bytes.Buffer

	b.WriteByte('{')

	for i, name := range projection {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		b.Write(key)
		b.WriteByte(':')
		val, _ := json.Marshal(binding[name])
		b.Write(val)
	}

	b.WriteByte('}')

	return b.Bytes()

}
