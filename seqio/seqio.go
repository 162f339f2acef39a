// SPDX-License-Identifier: MIT

// Package seqio reads numeric sequences for alignment from YAML, JSON or
// line-oriented text.
//
// Accepted documents:
//
//	YAML/JSON: a sequence of numbers or numeric strings, e.g. [1, "2.5", 3]
//	Lines:     whitespace- or comma-separated values; blank lines and
//	           '#' comments are skipped
//	Pair:      a mapping {a: [...], b: [...]} in YAML or JSON
//
// Values are coerced with spf13/cast, so "3", 3 and 3.0 are all accepted.
// NaN, ±Inf, null and booleans are rejected with ErrBadValue.
package seqio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptySequence indicates a document that holds no values.
	ErrEmptySequence = errors.New("seqio: empty sequence")

	// ErrBadValue indicates an element that is not a finite number.
	ErrBadValue = errors.New("seqio: value is not a finite number")

	// ErrUnknownFormat indicates a format name ParseFormat does not know.
	ErrUnknownFormat = errors.New("seqio: unknown format")
)

// Format selects the document decoder.
type Format int

const (
	// FormatLines is plain text, one or more values per line.
	FormatLines Format = iota
	// FormatYAML is a YAML sequence.
	FormatYAML
	// FormatJSON is a JSON array.
	FormatJSON
)

var formatNames = map[Format]string{
	FormatLines: "lines",
	FormatYAML:  "yaml",
	FormatJSON:  "json",
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps "lines", "yaml"/"yml" or "json" (any case) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lines", "txt", "text":
		return FormatLines, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatLines, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// FormatFromPath guesses the format from the file extension.
// Anything other than .yaml, .yml and .json is read as lines.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatLines
	}
}

// Decode reads one sequence from r.
func Decode(r io.Reader, f Format) ([]float64, error) {
	switch f {
	case FormatLines:
		return decodeLines(r)
	case FormatYAML:
		var raw []any
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptySequence
			}
			return nil, fmt.Errorf("seqio: yaml: %w", err)
		}
		return toFloats(raw)
	case FormatJSON:
		var raw []any
		if err := decodeJSON(r, &raw); err != nil {
			return nil, err
		}
		return toFloats(raw)
	default:
		return nil, fmt.Errorf("%s: %w", f, ErrUnknownFormat)
	}
}

// ReadFile decodes the sequence stored at path, using FormatFromPath.
func ReadFile(path string) ([]float64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	seq, err := Decode(fh, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return seq, nil
}

// Pair holds the two sequences of a pair document.
type Pair struct {
	A []float64
	B []float64
}

// rawPair is the on-disk shape of a pair document.
type rawPair struct {
	A []any `yaml:"a" json:"a"`
	B []any `yaml:"b" json:"b"`
}

// DecodePair reads a {a: [...], b: [...]} document. FormatLines is not
// supported for pairs and is treated as YAML.
func DecodePair(r io.Reader, f Format) (Pair, error) {
	var raw rawPair
	switch f {
	case FormatJSON:
		if err := decodeJSON(r, &raw); err != nil {
			return Pair{}, err
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return Pair{}, ErrEmptySequence
			}
			return Pair{}, fmt.Errorf("seqio: yaml: %w", err)
		}
	}

	a, err := toFloats(raw.A)
	if err != nil {
		return Pair{}, fmt.Errorf("a: %w", err)
	}
	b, err := toFloats(raw.B)
	if err != nil {
		return Pair{}, fmt.Errorf("b: %w", err)
	}

	return Pair{A: a, B: b}, nil
}

// ReadPairFile decodes the pair document stored at path.
func ReadPairFile(path string) (Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pair{}, err
	}
	p, err := DecodePair(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return Pair{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// decodeJSON decodes one JSON value keeping numbers as json.Number.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptySequence
		}
		return fmt.Errorf("seqio: json: %w", err)
	}

	return nil
}

// decodeLines splits every line on commas and whitespace.
func decodeLines(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if k := strings.IndexByte(text, '#'); k >= 0 {
			text = text[:k]
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\r'
		})
		for _, tok := range fields {
			v, err := toFloat(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, tok, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptySequence
	}

	return out, nil
}

// toFloats coerces every element of raw.
func toFloats(raw []any) ([]float64, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySequence
	}
	out := make([]float64, len(raw))
	for k, x := range raw {
		v, err := toFloat(x)
		if err != nil {
			return nil, fmt.Errorf("index %d: %v: %w", k, x, err)
		}
		out[k] = v
	}

	return out, nil
}

// toFloat accepts numbers and numeric strings only.
func toFloat(x any) (float64, error) {
	switch x.(type) {
	case nil, bool:
		return 0, ErrBadValue
	}
	v, err := cast.ToFloat64E(x)
	if err != nil {
		return 0, ErrBadValue
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrBadValue
	}

	return v, nil
}
