package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// LocaleFields are the mutable fields of a locale.
type LocaleFields struct {
	Name                 string `json:"name"                   yaml:"name"`
	Code                 string `json:"code"                   yaml:"code"`
	FallbackCode         string `json:"fallbackCode,omitempty" yaml:"fallbackCode,omitempty"`
	ContentDeliveryAPI   bool   `json:"contentDeliveryApi"     yaml:"contentDeliveryApi"`
	ContentManagementAPI bool   `json:"contentManagementApi"   yaml:"contentManagementApi"`
	Default              bool   `json:"default,omitempty"      yaml:"default,omitempty"`
	Optional             bool   `json:"optional"               yaml:"optional"`
}

// LocaleProps is the wire shape of a locale.
type LocaleProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	LocaleFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p LocaleProps) MarshalJSON() ([]byte, error) {
	type plain LocaleProps

	return marshalWithExtra(plain(p), p.Extra)
}

// LocaleAPI is the capability set of a locale.
type LocaleAPI interface {
	Sys() MetaSys
	ToPlainObject() LocaleProps
	Update(ctx context.Context) (*Locale, error)
	Delete(ctx context.Context) error
}

// Locale is a language/region an environment stores content in.
type Locale struct {
	Identity
	LocaleFields

	makeRequest MakeRequest
}

var _ LocaleAPI = (*Locale)(nil)

// WrapLocale wraps a raw locale.
func WrapLocale(makeRequest MakeRequest, raw json.RawMessage) (*Locale, error) {
	identity, fields, err := Decode[LocaleFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping locale: %w", err)
	}

	return &Locale{Identity: identity, LocaleFields: fields, makeRequest: makeRequest}, nil
}

// WrapLocaleCollection wraps a raw collection of locales.
var WrapLocaleCollection = WrapCollection(WrapLocale)

// ToPlainObject returns a deep copy of the locale's wire view.
func (l *Locale) ToPlainObject() LocaleProps {
	return LocaleProps{Sys: l.Sys(), Extra: l.extras(), LocaleFields: clone(l.LocaleFields)}
}

func (l *Locale) params() Params {
	return l.spaceParams().With(ParamLocaleID, l.sys.ID)
}

// Update sends the current fields to the server. The default flag cannot be
// changed through the API and is left out of the payload.
func (l *Locale) Update(ctx context.Context) (*Locale, error) {
	payload := l.ToPlainObject()
	payload.Default = false

	raw, err := l.makeRequest(ctx, Request{
		EntityType: EntityLocale,
		Action:     ActionUpdate,
		Params:     l.params(),
		Payload:    payload,
	})

	return wrapResponse(l.makeRequest, raw, err, WrapLocale, "updating locale")
}

// Delete deletes the locale.
func (l *Locale) Delete(ctx context.Context) error {
	_, err := l.makeRequest(ctx, Request{
		EntityType: EntityLocale,
		Action:     ActionDelete,
		Params:     l.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting locale: %w", err)
	}

	return nil
}
