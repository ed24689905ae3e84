package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// attempt is one extraction strategy. It reports false when the payload
// does not have the shape the strategy looks for.
type attempt func(gjson.Result) (gjson.Result, bool)

// firstOf runs the strategies in order and returns the first hit.
func firstOf(r gjson.Result, strategies ...attempt) (gjson.Result, bool) {
	for _, try := range strategies {
		if got, ok := try(r); ok {
			return got, true
		}
	}
	return gjson.Result{}, false
}

// truthy follows the loose truthiness the backend payloads were designed
// around: missing, null, false, 0 and "" are all "not set".
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.String:
		return r.Str != ""
	case gjson.True, gjson.JSON:
		return true
	}
	return false
}

// explicitlyFalse reports whether r is the JSON literal false.
func explicitlyFalse(r gjson.Result) bool {
	return r.Exists() && r.Type == gjson.False
}

// scalarText renders a value the way it would appear inline in text.
func scalarText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Null:
		return "null"
	case gjson.JSON:
		return compactJSON(r.Raw)
	}
	return r.String()
}

// textOr returns the rendered value of r, or fallback when r is not set.
func textOr(r gjson.Result, fallback string) string {
	if !truthy(r) {
		return fallback
	}
	return scalarText(r)
}

// firstText returns the first set field among keys.
func firstText(obj gjson.Result, fallback string, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); truthy(v) {
			return scalarText(v)
		}
	}
	return fallback
}

func compactJSON(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}

func prettyJSON(raw string) string {
	return strings.TrimRight(string(pretty.Pretty([]byte(raw))), "\n")
}

// number reads a numeric field that may arrive as a number or a numeric string.
func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// stringList collects the scalar items of an array, rendering objects as
// compact JSON.
func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, scalarText(v))
		return true
	})
	return out
}

// sectionLabel turns an object key into a heading: "study_tips" → "STUDY TIPS".
func sectionLabel(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

// hasKeys reports whether r is an object with at least one key.
func hasKeys(r gjson.Result) bool {
	if !r.IsObject() {
		return false
	}
	found := false
	r.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}

// parseEmbedded parses a string that itself holds JSON.
func parseEmbedded(s string) (gjson.Result, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !gjson.Valid(s) {
		return gjson.Result{}, false
	}
	return gjson.Parse(s), true
}
