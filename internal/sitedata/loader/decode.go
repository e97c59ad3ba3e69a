package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// decode parses a data document into a generic mapping. YAML is selected by
// file extension; everything else is treated as JSON.
func decode(data []byte, location string) (map[string]any, error) {
	var (
		raw any
		err error
	)
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		raw, err = decodeYAML(data)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: data file %s: %w", sitedata.ErrParse, location, err)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: data file %s: top-level value must be an object, got %s",
			sitedata.ErrParse, location, describe(raw))
	}
	return doc, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return normalizeValue(raw), nil
}

func decodeYAML(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("document is empty")
	}
	return normalizeValue(raw), nil
}

// normalizeValue converts decoder specific shapes into the value set templates
// see: integers become int64 (or *big.Int past the int64 range), other
// numbers sitedata.Float, and YAML mappings with non-string keys get string
// keys.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if isIntegerLiteral(v.String()) {
			if n, ok := new(big.Int).SetString(v.String(), 10); ok {
				return n
			}
		}
		if f, err := v.Float64(); err == nil {
			return sitedata.Float(f)
		}
		return v.String()
	case int:
		return int64(v)
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v)
		}
		return new(big.Int).SetUint64(v)
	case float64:
		return sitedata.Float(v)
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeValue(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return v
	}
}

func isIntegerLiteral(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eE")
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, float64, sitedata.Float, *big.Int:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
