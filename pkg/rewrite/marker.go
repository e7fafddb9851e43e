// Copyright 2025 walteh LLC
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

package rewrite

import (
	"regexp"
	"strings"
)

// 🔍 Marker identifies the line where a structural edit must occur,
// either by substring containment or by regex match. Matching is
// deliberately line-oriented: the generated files are never parsed as
// XML, which keeps the rules stable across scaffolding-tool versions.
type Marker struct {
	substr string
	re     *regexp.Regexp
}

// Contains creates a marker that fires when a line contains substr.
func Contains(substr string) Marker {
	return Marker{substr: substr}
}

// Pattern creates a regex marker. expr must compile; rule tables are
// package-level so a bad pattern fails at init, not mid-rewrite.
func Pattern(expr string) Marker {
	return Marker{re: regexp.MustCompile(expr)}
}

// Match reports whether the marker fires on line.
func (m Marker) Match(line string) bool {
	if m.re != nil {
		return m.re.MatchString(line)
	}
	return m.substr != "" && strings.Contains(line, m.substr)
}

// ReplaceGroup substitutes repl for the given capture group of the
// marker's regex within line, preserving every byte outside the
// captured span. It reports whether the marker matched. Substring
// markers never match here since they capture nothing.
func (m Marker) ReplaceGroup(line string, group int, repl string) (string, bool) {
	if m.re == nil {
		return line, false
	}
	idx := m.re.FindStringSubmatchIndex(line)
	if idx == nil || 2*group+1 >= len(idx) {
		return line, false
	}
	start, end := idx[2*group], idx[2*group+1]
	if start < 0 {
		return line, false
	}
	return line[:start] + repl + line[end:], true
}

var (
	xmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	xmlUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// EscapeXML escapes operator-supplied text for insertion into a markup
// attribute or element body.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// UnescapeXML reverses EscapeXML.
func UnescapeXML(s string) string {
	return xmlUnescaper.Replace(s)
}
