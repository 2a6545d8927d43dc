package cma

import (
	"encoding/json"
	"fmt"
)

// Collection is the paginated envelope returned by every list operation.
type Collection[T any] struct {
	Total int `json:"total" yaml:"total"`
	Skip  int `json:"skip"  yaml:"skip"`
	Limit int `json:"limit" yaml:"limit"`
	Items []T `json:"items" yaml:"items"`
}

// CollectionWrapFunc turns a raw collection response into a collection of
// wrapped entities.
type CollectionWrapFunc[E any] func(makeRequest MakeRequest, raw json.RawMessage) (*Collection[E], error)

// MapCollection applies fn to every item in order, keeping total, skip and
// limit. The first error aborts the mapping.
func MapCollection[T, U any](c Collection[T], fn func(T) (U, error)) (Collection[U], error) {
	out := Collection[U]{
		Total: c.Total,
		Skip:  c.Skip,
		Limit: c.Limit,
		Items: make([]U, 0, len(c.Items)),
	}

	for i, item := range c.Items {
		mapped, err := fn(item)
		if err != nil {
			return Collection[U]{}, fmt.Errorf("item %d: %w", i, err)
		}

		out.Items = append(out.Items, mapped)
	}

	return out, nil
}

// WrapCollection derives a collection wrapper from a single-entity wrapper.
func WrapCollection[E any](wrap WrapFunc[E]) CollectionWrapFunc[E] {
	return func(makeRequest MakeRequest, raw json.RawMessage) (*Collection[E], error) {
		var envelope Collection[json.RawMessage]

		err := json.Unmarshal(raw, &envelope)
		if err != nil {
			return nil, fmt.Errorf("decoding collection: %w", err)
		}

		wrapped, err := MapCollection(envelope, func(item json.RawMessage) (E, error) {
			return wrap(makeRequest, item)
		})
		if err != nil {
			return nil, fmt.Errorf("wrapping collection: %w", err)
		}

		return &wrapped, nil
	}
}

// wrapCollectionResponse mirrors wrapResponse for list operations.
func wrapCollectionResponse[E any](makeRequest MakeRequest, raw json.RawMessage, err error, wrap CollectionWrapFunc[E], op string) (*Collection[E], error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return wrap(makeRequest, raw)
}
