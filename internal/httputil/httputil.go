// Package httputil provides small HTTP-related helpers shared by the parser
// and generator.
package httputil

import "strings"

// bodyMethods are the methods that conventionally carry a request body.
var bodyMethods = map[string]bool{
	"post":  true,
	"put":   true,
	"patch": true,
}

// MethodHasBody reports whether the HTTP method conventionally carries a
// request body. Case-insensitive.
func MethodHasBody(method string) bool {
	return bodyMethods[strings.ToLower(method)]
}

// ValidateStatusCode reports whether key is usable as a responses-table key:
// a three-digit HTTP status code (e.g., "200", "404"), a wildcard pattern
// (e.g., "2XX"), or a specification extension field (e.g., "x-custom").
func ValidateStatusCode(key string) bool {
	if strings.HasPrefix(key, "x-") {
		return true
	}
	if len(key) != 3 {
		return false
	}
	if key[0] < '1' || key[0] > '5' {
		return false
	}
	rest := key[1:]
	if rest == "XX" || rest == "xx" {
		return true
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// IsSuccessCode reports whether key denotes a 2xx response, including the
// "2XX" wildcard form.
func IsSuccessCode(key string) bool {
	return len(key) == 3 && key[0] == '2' && ValidateStatusCode(key)
}
