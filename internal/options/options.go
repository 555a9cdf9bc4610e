// Package options turns "key=value" command line tokens into a map.
package options

import "strings"

// ToMap splits every token on its first '='. Tokens without '=' are dropped.
//
// Keys are stored as given but compared case-insensitively, so of "Amount=1EUR amount=2EUR"
// only the later entry survives.
func ToMap(args []string) map[string]string {
	result := make(map[string]string)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			continue
		}

		for existing := range result {
			if strings.EqualFold(existing, key) {
				delete(result, existing)
			}
		}
		result[key] = value
	}
	return result
}

// Lookup finds a key ignoring case.
func Lookup(opts map[string]string, key string) (string, bool) {
	if value, ok := opts[key]; ok {
		return value, true
	}
	for k, v := range opts {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
