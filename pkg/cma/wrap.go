package cma

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// WrapFunc turns a raw transport response into a wrapped entity.
type WrapFunc[E any] func(makeRequest MakeRequest, raw json.RawMessage) (E, error)

// ErrNotAnObject is returned when a raw entity is not a JSON object.
var ErrNotAnObject = errors.New("raw entity is not a JSON object")

type sysEnvelope struct {
	Sys MetaSys `json:"sys"`
}

// Extra holds the top-level wire keys of an entity that have no typed field.
// They are sent back unchanged on update.
type Extra map[string]json.RawMessage

// Decode splits a raw entity into its frozen identity and its mutable fields.
// Both are decoded into fresh values, so nothing aliases raw. A missing sys
// block yields a zero Identity. Keys F does not declare are kept in the
// Identity and reappear in the entity's plain object.
func Decode[F any](raw json.RawMessage) (Identity, F, error) {
	var fields F

	if !isObject(raw) {
		return Identity{}, fields, ErrNotAnObject
	}

	var envelope sysEnvelope

	err := json.Unmarshal(raw, &envelope)
	if err != nil {
		return Identity{}, fields, fmt.Errorf("decoding sys: %w", err)
	}

	err = json.Unmarshal(raw, &fields)
	if err != nil {
		return Identity{}, fields, fmt.Errorf("decoding fields: %w", err)
	}

	extra, err := unmodeledKeys(raw, reflect.TypeFor[F]())
	if err != nil {
		return Identity{}, fields, err
	}

	identity := NewIdentity(envelope.Sys)
	identity.extra = extra

	return identity, fields, nil
}

// unmodeledKeys returns the keys of raw that neither sys nor a json field of
// fieldsType claims, with their values compacted.
func unmodeledKeys(raw json.RawMessage, fieldsType reflect.Type) (Extra, error) {
	var object map[string]json.RawMessage

	err := json.Unmarshal(raw, &object)
	if err != nil {
		return nil, fmt.Errorf("decoding object: %w", err)
	}

	known := wireKeys(fieldsType)

	var extra Extra

	for key, value := range object {
		folded := strings.ToLower(key)
		if folded == "sys" {
			continue
		}

		if _, ok := known[folded]; ok {
			continue
		}

		var compact bytes.Buffer

		err = json.Compact(&compact, value)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}

		if extra == nil {
			extra = make(Extra)
		}

		extra[key] = compact.Bytes()
	}

	return extra, nil
}

var wireKeyCache sync.Map

// wireKeys lists the lower-cased json names of a struct type, following
// embedded structs the way encoding/json does.
func wireKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := wireKeyCache.Load(t); ok {
		keys, _ := cached.(map[string]struct{})

		return keys
	}

	keys := make(map[string]struct{})
	collectWireKeys(t, keys)
	wireKeyCache.Store(t, keys)

	return keys
}

func collectWireKeys(t reflect.Type, keys map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := range t.NumField() {
		field := t.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			collectWireKeys(field.Type, keys)

			continue
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		keys[strings.ToLower(name)] = struct{}{}
	}
}

// marshalWithExtra encodes v, a struct, and adds the keys of extra it does
// not already contain.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var object map[string]json.RawMessage

	err = json.Unmarshal(data, &object)
	if err != nil {
		return nil, err
	}

	for key, value := range extra {
		if _, ok := object[key]; !ok {
			object[key] = value
		}
	}

	return json.Marshal(object)
}

// Raw encodes any wire-shaped value as a raw entity, for feeding a plain
// object back into a WrapFunc.
func Raw(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding raw entity: %w", err)
	}

	return data, nil
}

// clone deep-copies a wire-shaped value. Nil maps and slices stay nil, empty
// ones stay empty. Values must be acyclic, as every JSON value is.
func clone[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.New(src.Type()).Elem()
	copyValue(dst, src)

	out, _ := dst.Interface().(T)

	return out
}

func copyValue(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Map:
		if src.IsNil() {
			return
		}

		dst.Set(reflect.MakeMapWithSize(src.Type(), src.Len()))

		iter := src.MapRange()
		for iter.Next() {
			elem := reflect.New(src.Type().Elem()).Elem()
			copyValue(elem, iter.Value())
			dst.SetMapIndex(iter.Key(), elem)
		}
	case reflect.Slice:
		if src.IsNil() {
			return
		}

		dst.Set(reflect.MakeSlice(src.Type(), src.Len(), src.Len()))

		for i := range src.Len() {
			copyValue(dst.Index(i), src.Index(i))
		}
	case reflect.Array:
		for i := range src.Len() {
			copyValue(dst.Index(i), src.Index(i))
		}
	case reflect.Pointer:
		if src.IsNil() {
			return
		}

		dst.Set(reflect.New(src.Type().Elem()))
		copyValue(dst.Elem(), src.Elem())
	case reflect.Interface:
		if src.IsNil() {
			return
		}

		elem := reflect.New(src.Elem().Type()).Elem()
		copyValue(elem, src.Elem())
		dst.Set(elem)
	case reflect.Struct:
		dst.Set(src)

		for i := range src.NumField() {
			if dst.Field(i).CanSet() {
				copyValue(dst.Field(i), src.Field(i))
			}
		}
	default:
		dst.Set(src)
	}
}

func isObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}

	return false
}

// wrapResponse is the tail shared by every request-issuing method: it passes
// a transport error through with context and re-wraps a successful response.
func wrapResponse[E any](makeRequest MakeRequest, raw json.RawMessage, err error, wrap WrapFunc[E], op string) (E, error) {
	if err != nil {
		var zero E

		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return wrap(makeRequest, raw)
}
