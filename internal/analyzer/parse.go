package analyzer

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrParseResponse is returned when no JSON object can be found in a reply.
var ErrParseResponse = errors.New("Failed to parse AI response")

// ErrInvalidResponse is returned when a reply holds JSON that does not match
// the result schema even after a repair attempt.
var ErrInvalidResponse = errors.New("AI response failed validation")

// jsonObject matches from the first '{' to the last '}' of the reply.
var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractJSON returns the outermost JSON object candidate in text.
func ExtractJSON(text string) (string, error) {
	match := jsonObject.FindString(text)
	if match == "" {
		return "", ErrParseResponse
	}
	return match, nil
}

// DecodeResult unmarshals a schema-valid document into a Result. Whole
// numbers written with a fraction or exponent, like 85.0, are accepted for
// integer fields the same way the schema accepts them.
func DecodeResult(doc string) (Result, error) {
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Result{}, err
	}
	normalized, err := json.Marshal(wholeNumbers(raw))
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := json.Unmarshal(normalized, &result); err != nil {
		return Result{}, err
	}
	return result, nil
}

func wholeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = wholeNumbers(x)
		}
	case []any:
		for i, x := range t {
			t[i] = wholeNumbers(x)
		}
	case json.Number:
		if !strings.ContainsAny(string(t), ".eE") {
			return t
		}
		f, err := t.Float64()
		if err == nil && f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return json.Number(strconv.FormatInt(int64(f), 10))
		}
	}
	return v
}
