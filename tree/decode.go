package tree

import (
	"bytes"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// DecodeOpt bounds ingestion of untrusted documents. Zero values disable the
// corresponding guard.
type DecodeOpt struct {
	MaxBytes int64 // reject inputs larger than this many bytes
	MaxDepth int   // reject documents nested deeper than this
}

// ErrTooLarge reports an input exceeding DecodeOpt.MaxBytes.
var ErrTooLarge = errors.New("tree: input exceeds max bytes")

// ErrTooDeep reports a document nested beyond DecodeOpt.MaxDepth.
var ErrTooDeep = errors.New("tree: document exceeds max depth")

// Decode parses a JSON document into a Value with no guards applied.
func Decode(data []byte) (Value, error) {
	return DecodeWith(data, DecodeOpt{})
}

// DecodeWith parses a JSON document into a Value, enforcing the given
// bounds. Numbers are preserved as json.Number so that large integer ids
// survive the round trip.
func DecodeWith(data []byte, opt DecodeOpt) (Value, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Value{}, fmt.Errorf("%w (%d > %d)", ErrTooLarge, len(data), opt.MaxBytes)
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return Value{}, fmt.Errorf("tree: decode: %w", err)
	}
	if opt.MaxDepth > 0 {
		if d := depthOf(root, 0); d > opt.MaxDepth {
			return Value{}, fmt.Errorf("%w (%d > %d)", ErrTooDeep, d, opt.MaxDepth)
		}
	}
	return Value{raw: root, present: true}, nil
}

func depthOf(v any, seen int) int {
	switch t := v.(type) {
	case map[string]any:
		max := seen + 1
		for _, e := range t {
			if d := depthOf(e, seen+1); d > max {
				max = d
			}
		}
		return max
	case []any:
		max := seen + 1
		for _, e := range t {
			if d := depthOf(e, seen+1); d > max {
				max = d
			}
		}
		return max
	default:
		return seen
	}
}
