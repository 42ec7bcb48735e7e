// SPDX-License-Identifier: MPL-2.0

package devfile

import "regexp"

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

// Expand substitutes "{key}" placeholders in s with values from vars.
// Placeholders without a value are left untouched, so shell brace syntax such
// as "${HOME}" or "{a,b}" passes through unless it names a constant.
func Expand(s string, vars map[string]string) string {
	if len(vars) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
