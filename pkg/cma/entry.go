package cma

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// LocalizedFields maps field id to locale code to value.
type LocalizedFields map[string]map[string]any

// MarshalJSON encodes a nil map as an empty object; the API rejects
// "fields": null.
func (f LocalizedFields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string]map[string]any(f))
}

// EntryMetadata carries entry tags.
type EntryMetadata struct {
	Tags []Link `json:"tags" yaml:"tags"`
}

// EntryFields are the mutable fields of an entry.
type EntryFields struct {
	Fields   LocalizedFields `json:"fields"             yaml:"fields"`
	Metadata *EntryMetadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EntryProps is the wire shape of an entry.
type EntryProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	EntryFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p EntryProps) MarshalJSON() ([]byte, error) {
	type plain EntryProps

	return marshalWithExtra(plain(p), p.Extra)
}

// EntryAPI is the capability set of an entry.
type EntryAPI interface {
	Sys() MetaSys
	ToPlainObject() EntryProps
	Update(ctx context.Context) (*Entry, error)
	Delete(ctx context.Context) error
	Publish(ctx context.Context) (*Entry, error)
	Unpublish(ctx context.Context) (*Entry, error)
	Archive(ctx context.Context) (*Entry, error)
	Unarchive(ctx context.Context) (*Entry, error)
	GetField(fieldID, locale string) (any, error)
	SetField(fieldID, locale string, value any)
	DecodeFields(locale string, out any) error
	IsDraft() bool
	IsPublished() bool
	IsUpdated() bool
	IsArchived() bool
}

// Entry is a piece of content of some content type.
type Entry struct {
	Identity
	EntryFields

	makeRequest MakeRequest
}

var _ EntryAPI = (*Entry)(nil)

// WrapEntry wraps a raw entry.
func WrapEntry(makeRequest MakeRequest, raw json.RawMessage) (*Entry, error) {
	identity, fields, err := Decode[EntryFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping entry: %w", err)
	}

	return &Entry{Identity: identity, EntryFields: fields, makeRequest: makeRequest}, nil
}

// WrapEntryCollection wraps a raw collection of entries.
var WrapEntryCollection = WrapCollection(WrapEntry)

// ToPlainObject returns a deep copy of the entry's wire view.
func (e *Entry) ToPlainObject() EntryProps {
	return EntryProps{Sys: e.Sys(), Extra: e.extras(), EntryFields: clone(e.EntryFields)}
}

func (e *Entry) params() Params {
	return e.spaceParams().With(ParamEntryID, e.sys.ID)
}

func (e *Entry) transition(ctx context.Context, action string, params Params, op string) (*Entry, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     action,
		Params:     params,
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEntry, op)
}

// Update sends the current fields to the server.
func (e *Entry) Update(ctx context.Context) (*Entry, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     ActionUpdate,
		Params:     e.params(),
		Payload:    e.ToPlainObject(),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEntry, "updating entry")
}

// Delete deletes the entry.
func (e *Entry) Delete(ctx context.Context) error {
	_, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     ActionDelete,
		Params:     e.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

// Publish publishes the current version.
func (e *Entry) Publish(ctx context.Context) (*Entry, error) {
	return e.transition(ctx, ActionPublish, e.params().WithVersion(e.sys.Version), "publishing entry")
}

// Unpublish withdraws the published version.
func (e *Entry) Unpublish(ctx context.Context) (*Entry, error) {
	return e.transition(ctx, ActionUnpublish, e.params(), "unpublishing entry")
}

// Archive archives the entry. Only unpublished entries can be archived.
func (e *Entry) Archive(ctx context.Context) (*Entry, error) {
	return e.transition(ctx, ActionArchive, e.params().WithVersion(e.sys.Version), "archiving entry")
}

// Unarchive restores an archived entry as a draft.
func (e *Entry) Unarchive(ctx context.Context) (*Entry, error) {
	return e.transition(ctx, ActionUnarchive, e.params(), "unarchiving entry")
}

// GetField returns the value of a field in one locale.
func (e *Entry) GetField(fieldID, locale string) (any, error) {
	localized, ok := e.Fields[fieldID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	value, ok := localized[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s[%s]", ErrLocaleNotFound, fieldID, locale)
	}

	return value, nil
}

// SetField sets the value of a field in one locale.
func (e *Entry) SetField(fieldID, locale string, value any) {
	if e.Fields == nil {
		e.Fields = make(LocalizedFields)
	}

	if e.Fields[fieldID] == nil {
		e.Fields[fieldID] = make(map[string]any)
	}

	e.Fields[fieldID][locale] = value
}

// DecodeFields decodes the values of one locale into out, a pointer to a
// struct whose json tags name the field ids. Fields without a value in that
// locale are left untouched.
func (e *Entry) DecodeFields(locale string, out any) error {
	values := make(map[string]any, len(e.Fields))

	for fieldID, localized := range e.Fields {
		if value, ok := localized[locale]; ok {
			values[fieldID] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating field decoder: %w", err)
	}

	err = decoder.Decode(values)
	if err != nil {
		return fmt.Errorf("decoding %s fields of entry %s: %w", locale, e.sys.ID, err)
	}

	return nil
}

// IsDraft reports whether the entry was never published.
func (e *Entry) IsDraft() bool { return e.isDraft() }

// IsPublished reports whether the published version is the current one.
func (e *Entry) IsPublished() bool { return e.isPublished() }

// IsUpdated reports whether there are changes since the last publish.
func (e *Entry) IsUpdated() bool { return e.isUpdated() }

// IsArchived reports whether the entry is archived.
func (e *Entry) IsArchived() bool { return e.isArchived() }
