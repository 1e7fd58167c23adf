package el

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/shwimple/shwimple/pkg/dom"
)

// Cx joins class name fragments into one space separated string.
//
// Strings are split on whitespace, non-zero numbers of any numeric kind are
// kept, string slices are flattened and maps contribute their true keys in
// sorted order. Empty strings, zero numbers, booleans and nil are dropped.
//
//	Cx("btn btn-lg", map[string]bool{"btn-primary": isPrimary}, 2)
func Cx(values ...any) string {
	tokens := make([]string, 0, len(values))
	for _, value := range values {
		tokens = appendClassTokens(tokens, value)
	}
	return strings.Join(tokens, " ")
}

func appendClassTokens(tokens []string, value any) []string {
	switch v := value.(type) {
	case nil, bool:
		return tokens
	case string:
		return append(tokens, strings.Fields(v)...)
	case []string:
		for _, s := range v {
			tokens = append(tokens, strings.Fields(s)...)
		}
		return tokens
	case map[string]bool:
		keys := make([]string, 0, len(v))
		for k, on := range v {
			if on {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			tokens = append(tokens, strings.Fields(k)...)
		}
		return tokens
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if rv.IsZero() {
			return tokens
		}
		return append(tokens, fmt.Sprint(value))
	}
	return tokens
}

// DataAttrs prefixes every key with "data-".
// nil and false values are dropped; true becomes an empty value.
func DataAttrs(values map[string]any) Attrs {
	return prefixed("data-", values)
}

// AriaAttrs prefixes every key with "aria-".
// nil and false values are dropped; true becomes an empty value.
func AriaAttrs(values map[string]any) Attrs {
	return prefixed("aria-", values)
}

func prefixed(prefix string, values map[string]any) Attrs {
	out := make(Attrs, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			out[prefix+key] = ""
		default:
			out[prefix+key] = stringify(v)
		}
	}
	return out
}

// Merge combines attribute maps; later maps win on key collisions.
func Merge(attrs ...Attrs) Attrs {
	out := make(Attrs)
	for _, a := range attrs {
		for k, v := range a {
			out[k] = v
		}
	}
	return out
}

// MetaCharset returns <meta charset="utf-8">.
func MetaCharset() *dom.Node {
	return Meta(Attrs{"charset": "utf-8"})
}

// MetaViewport returns the responsive viewport meta tag.
func MetaViewport() *dom.Node {
	return Meta(Attrs{"name": "viewport", "content": "width=device-width, initial-scale=1.0"})
}

// Stylesheet returns a stylesheet link for href.
func Stylesheet(href string) *dom.Node {
	return Link(Attrs{"rel": "stylesheet", "href": href})
}
