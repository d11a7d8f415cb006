// Package features turns a validated prediction request and the demographics
// table into the model's feature vector and the merged metadata record.
//
// Everything here is pure: no I/O, no shared mutable state. Prepare can be
// called concurrently and returns identical results for identical inputs.
package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"housing-prediction-api/internal/demographics"
)

// Feature names, in model input order.
const (
	Age       = "age"
	Income    = "income"
	Zipcode   = "zipcode"
	Gender    = "gender"
	Education = "education"
)

// Unknown fills optional fields that neither the request nor the
// demographics row supply.
const Unknown = "unknown"

var featureOrder = []string{Age, Income, Zipcode, Gender, Education}

// ErrMissingFeature means a name in the feature order could not be resolved
// from the merged record. It indicates a bug, not bad input.
var ErrMissingFeature = errors.New("features: merged record is missing a feature")

// Order returns the fixed feature order used to build vectors.
func Order() []string {
	return append([]string(nil), featureOrder...)
}

// Lookup resolves a zipcode to its demographics row.
type Lookup interface {
	Lookup(zipcode string) (demographics.Row, bool)
}

// Input is a validated request. Gender and Education are nil when the
// client used the minimal schema.
type Input struct {
	Age       int
	Income    float64
	Zipcode   string
	Gender    *string
	Education *string
}

// Record is the merged view of a request and its demographics row. It is
// serialized flat, as the response metadata.
type Record struct {
	Age       int
	Income    float64
	Zipcode   string
	Gender    *string
	Education *string

	// Demographics holds row columns that are not model features.
	Demographics map[string]string

	// Enriched reports whether a demographics row was found.
	Enriched bool
}

// Value is one element of a feature vector: a number or a category.
type Value struct {
	Name    string
	Numeric bool
	Number  float64
	Text    string
}

// MarshalJSON renders the bare number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// Vector is the ordered model input.
type Vector []Value

// Prepare builds the feature vector and merged record for in.
//
// The request is completed from the demographics row (see Complete) and then
// merged over it, so an explicit request value always wins over the table.
// A zipcode missing from the table is not an error.
func Prepare(in Input, table Lookup) (Vector, Record, error) {
	in.Zipcode = demographics.Normalize(in.Zipcode)

	var (
		row   demographics.Row
		found bool
	)
	if table != nil {
		row, found = table.Lookup(in.Zipcode)
	}

	in = Complete(in, row)
	merged := Merge(row, in)
	merged.Enriched = found

	vec, err := merged.Vector()
	if err != nil {
		return nil, Record{}, err
	}
	return vec, merged, nil
}

// Complete fills the optional fields the request left out. Each takes the
// row's value when the row has a non-empty one, otherwise Unknown. Fields the
// request already carries are left alone.
func Complete(in Input, row demographics.Row) Input {
	if in.Gender == nil {
		in.Gender = fromRow(row, Gender)
	}
	if in.Education == nil {
		in.Education = fromRow(row, Education)
	}
	return in
}

func fromRow(row demographics.Row, field string) *string {
	v := Unknown
	if s, ok := row[field]; ok && s != "" {
		v = s
	}
	return &v
}

// Merge overlays in on row. Every field set on in overrides the row's value
// for the same name; row columns that are not features are carried through.
func Merge(row demographics.Row, in Input) Record {
	rec := Record{
		Age:     in.Age,
		Income:  in.Income,
		Zipcode: in.Zipcode,
	}

	rec.Gender = override(row, Gender, in.Gender)
	rec.Education = override(row, Education, in.Education)

	for k, v := range row {
		if slices.Contains(featureOrder, k) {
			continue
		}
		if rec.Demographics == nil {
			rec.Demographics = make(map[string]string, len(row))
		}
		rec.Demographics[k] = v
	}
	return rec
}

func override(row demographics.Row, field string, explicit *string) *string {
	if explicit != nil {
		v := *explicit
		return &v
	}
	if s, ok := row[field]; ok {
		return &s
	}
	return nil
}

// Field returns the merged value for a feature name.
func (r Record) Field(name string) (Value, bool) {
	switch name {
	case Age:
		return Value{Name: name, Numeric: true, Number: float64(r.Age)}, true
	case Income:
		return Value{Name: name, Numeric: true, Number: r.Income}, true
	case Zipcode:
		return Value{Name: name, Text: r.Zipcode}, true
	case Gender:
		if r.Gender == nil {
			return Value{}, false
		}
		return Value{Name: name, Text: *r.Gender}, true
	case Education:
		if r.Education == nil {
			return Value{}, false
		}
		return Value{Name: name, Text: *r.Education}, true
	}
	return Value{}, false
}

// Vector reads every feature in order from the record.
func (r Record) Vector() (Vector, error) {
	vec := make(Vector, 0, len(featureOrder))
	for _, name := range featureOrder {
		v, ok := r.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		vec = append(vec, v)
	}
	return vec, nil
}

// MarshalJSON flattens the demographics columns and the feature fields into
// one object; feature fields take precedence.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Demographics)+len(featureOrder))
	for k, v := range r.Demographics {
		out[k] = v
	}
	out[Age] = r.Age
	out[Income] = r.Income
	out[Zipcode] = r.Zipcode
	if r.Gender != nil {
		out[Gender] = *r.Gender
	}
	if r.Education != nil {
		out[Education] = *r.Education
	}
	return json.Marshal(out)
}
