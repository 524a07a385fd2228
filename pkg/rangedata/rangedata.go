// Package rangedata obtains the domains of the range selectors from a file or
// an HTTP endpoint.
//
// A normal range is given as {"min": n, "max": n} and a fixed range as a list
// of at least two numbers. Payloads are validated against JSON schemas before
// they are decoded. The last good payload of every source can be kept in a
// cache, which is used when the source cannot be read.
package rangedata

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"src.elv.sh/rangebar/pkg/logutil"
	"src.elv.sh/rangebar/pkg/must"
	"src.elv.sh/rangebar/pkg/rangesel"
)

var logger = logutil.GetLogger("[rangedata] ")

var (
	// ErrNoSource is returned when a Source has neither a URL nor a file.
	ErrNoSource = errors.New("no source")
	// ErrFetch wraps errors in reading a payload.
	ErrFetch = errors.New("failed to fetch data")
	// ErrBadPayload wraps errors in validating or decoding a payload.
	ErrBadPayload = errors.New("bad payload")
)

// Kind is the kind of a range.
type Kind uint8

// Possible values for Kind.
const (
	Normal Kind = iota
	Fixed
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Fixed:
		return "fixed"
	default:
		return "?"
	}
}

var (
	//go:embed schemas/normal.json
	normalSchemaJSON string
	//go:embed schemas/fixed.json
	fixedSchemaJSON string

	normalSchema = mustSchema(normalSchemaJSON)
	fixedSchema  = mustSchema(fixedSchemaJSON)
)

func mustSchema(s string) *gojsonschema.Schema {
	return must.OK1(gojsonschema.NewSchema(gojsonschema.NewStringLoader(s)))
}

// Decode validates a payload and decodes it into a Domain. A normal payload
// becomes a continuous domain, and a fixed payload a discrete one.
func Decode(kind Kind, data []byte) (rangesel.Domain, error) {
	var schema *gojsonschema.Schema
	switch kind {
	case Normal:
		schema = normalSchema
	case Fixed:
		schema = fixedSchema
	default:
		return rangesel.Domain{}, fmt.Errorf("%w: unknown kind %v", ErrBadPayload, kind)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return rangesel.Domain{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return rangesel.Domain{}, fmt.Errorf("%w: %s", ErrBadPayload, strings.Join(msgs, "; "))
	}

	var d rangesel.Domain
	if kind == Normal {
		var p struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return rangesel.Domain{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
		}
		d, err = rangesel.NewContinuous(p.Min, p.Max)
	} else {
		var values []float64
		if err := json.Unmarshal(data, &values); err != nil {
			return rangesel.Domain{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
		}
		d, err = rangesel.NewDiscrete(values)
	}
	if err != nil {
		return rangesel.Domain{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return d, nil
}
