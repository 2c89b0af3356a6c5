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

package sql

import "strings"

// gateTokens names every syntactically recognisable but deliberately
// unimplemented feature the gate rejects before the query text reaches
// the splitter.
var gateTokens = []string{
	"GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET",
	"JOIN",
	"UNION", "INTERSECT", "EXCEPT",
	"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER",
	"IN(", "BETWEEN", "LIKE", "IS NULL", "EXISTS", "DISTINCT", "TOP", "INTO", "AS",
	"COUNT(", "MIN(", "MAX(", "SUM(", "AVG(",
}

// gate runs a case-insensitive, literal-aware substring scan over the raw
// query text and rejects the first unsupported token it finds outside a
// string literal. A single quote toggles an in-string flag; a backslash
// escapes exactly one following character.
func gate(query string) error {

	upper := strings.ToUpper(query)

	inString := false

	for i := 0; i < len(upper); i++ {

		c := upper[i]

		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == '\'' {
				inString = false
			}
			continue
		}

		if c == '\'' {
			inString = true
			continue
		}

		for _, tok := range gateTokens {
			if strings.HasPrefix(upper[i:], tok) {
				return &UnsupportedError{Feature: strings.TrimSuffix(tok, "(")}
			}
		}

	}

	return nil

}
