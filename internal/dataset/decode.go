package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// errNotObject is returned when the top-level value is not a JSON object.
var errNotObject = errors.New("top-level value must be a JSON object")

// decodeObject strictly decodes data into a tree of map[string]any, []any,
// string, gojson.Number, bool and nil. The top-level value must be an object,
// must be the only value in data, and no object may repeat a key.
func decodeObject(data []byte) (map[string]any, error) {
	if !gojson.Valid(data) {
		return nil, syntaxError(data)
	}

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w, got %s", errNotObject, describeToken(tok))
	}
	obj, err := decodeObjectBody(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return obj, nil
}

// syntaxError explains why gojson.Valid rejected data.
func syntaxError(data []byte) error {
	var v any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("unexpected data after top-level value")
}

// decodeObjectBody reads members up to and including the closing brace.
// path is used only to locate duplicate keys.
func decodeObjectBody(dec *gojson.Decoder, path string) (map[string]any, error) {
	obj := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key at %s, got %s", displayPath(path), describeToken(tok))
		}
		if _, dup := obj[key]; dup {
			return nil, fmt.Errorf("duplicate key %q at %s", key, displayPath(path))
		}
		val, err := decodeValue(dec, joinKey(path, key))
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArrayBody(dec *gojson.Decoder, path string) ([]any, error) {
	arr := []any{}
	for i := 0; dec.More(); i++ {
		val, err := decodeValue(dec, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return arr, nil
}

func decodeValue(dec *gojson.Decoder, path string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			return decodeObjectBody(dec, path)
		case '[':
			return decodeArrayBody(dec, path)
		}
		return nil, fmt.Errorf("unexpected %q at %s", rune(v), displayPath(path))
	case string, gojson.Number, bool, nil:
		return v, nil
	case float64:
		// Only reachable if UseNumber is ignored by the decoder.
		return gojson.Number(strconv.FormatFloat(v, 'f', -1, 64)), nil
	default:
		return nil, fmt.Errorf("unexpected token %T at %s", tok, displayPath(path))
	}
}

func expectDelim(dec *gojson.Decoder, want gojson.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(gojson.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %s", rune(want), describeToken(tok))
	}
	return nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "top level"
	}
	return path
}

// describeToken names the JSON type a decoder token starts.
func describeToken(tok any) string {
	if d, ok := tok.(gojson.Delim); ok {
		switch d {
		case '{':
			return "object"
		case '[':
			return "array"
		}
		return fmt.Sprintf("%q", rune(d))
	}
	return describe(tok)
}

// describe names the JSON type of a decoded value.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case gojson.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
