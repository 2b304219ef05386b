package c8y

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrFragmentNotFound is returned by Fragments.Get for an absent fragment.
var ErrFragmentNotFound = errors.New("fragment not found")

// Fragments holds the custom fragments of a resource: every top level JSON
// property that is not a declared field of the model, keyed by property name.
type Fragments map[string]json.RawMessage

// Set encodes value and stores it under name. Names of declared properties
// of the resource, such as "id" or "self", are never sent as fragments.
func (f *Fragments) Set(name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &EncodeError{Source: "fragment " + name, Err: err}
	}

	if *f == nil {
		*f = make(Fragments)
	}

	(*f)[name] = raw

	return nil
}

// Get decodes the fragment stored under name into target.
func (f Fragments) Get(name string, target interface{}) error {
	raw, ok := f[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFragmentNotFound, name)
	}

	err := json.Unmarshal(raw, target)
	if err != nil {
		return &DecodeError{Target: "fragment " + name, Err: err}
	}

	return nil
}

// Has reports whether a fragment named name is present.
func (f Fragments) Has(name string) bool {
	_, ok := f[name]

	return ok
}

// marshalWithFragments encodes v and merges fragments into the resulting
// object. Fragments named like a declared field of v or like one of the
// reserved properties of the resource are dropped, so a write model cannot
// carry a read-only property through its fragments.
func marshalWithFragments(v interface{}, fragments Fragments, reserved map[string]struct{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 {
		return data, nil
	}

	fields := make(map[string]json.RawMessage)

	err = json.Unmarshal(data, &fields)
	if err != nil {
		return nil, err
	}

	for name, raw := range fragments {
		if _, declared := fields[name]; declared || len(raw) == 0 {
			continue
		}

		if _, ok := reserved[name]; ok {
			continue
		}

		fields[name] = raw
	}

	return json.Marshal(fields)
}

// unmarshalWithFragments decodes data into v and returns the properties that
// are not in known.
func unmarshalWithFragments(data []byte, v interface{}, known map[string]struct{}) (Fragments, error) {
	err := json.Unmarshal(data, v)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage

	err = json.Unmarshal(data, &fields)
	if err != nil {
		return nil, err
	}

	var fragments Fragments

	for name, raw := range fields {
		if _, ok := known[name]; ok {
			continue
		}

		if fragments == nil {
			fragments = make(Fragments)
		}

		fragments[name] = raw
	}

	return fragments, nil
}

// jsonKeys returns the JSON property names declared by the struct type of v,
// including promoted fields of embedded structs.
func jsonKeys(v interface{}) map[string]struct{} {
	keys := make(map[string]struct{})
	collectJSONKeys(reflect.TypeOf(v), keys)

	return keys
}

func collectJSONKeys(t reflect.Type, keys map[string]struct{}) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			collectJSONKeys(field.Type, keys)

			continue
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		keys[name] = struct{}{}
	}
}

func seriesValue(fragments Fragments, fragment, series string) (*MeasurementValue, error) {
	var values map[string]MeasurementValue

	err := fragments.Get(fragment, &values)
	if err != nil {
		return nil, err
	}

	value, ok := values[series]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFragmentNotFound, fragment, series)
	}

	return &value, nil
}
