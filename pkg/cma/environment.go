package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// EnvironmentFields are the mutable fields of an environment.
type EnvironmentFields struct {
	Name string `json:"name" yaml:"name"`
}

// EnvironmentProps is the wire shape of an environment.
type EnvironmentProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	EnvironmentFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p EnvironmentProps) MarshalJSON() ([]byte, error) {
	type plain EnvironmentProps

	return marshalWithExtra(plain(p), p.Extra)
}

// EnvironmentAPI is the capability set of an environment.
type EnvironmentAPI interface {
	Sys() MetaSys
	ToPlainObject() EnvironmentProps
	Update(ctx context.Context) (*Environment, error)
	Delete(ctx context.Context) error
	GetContentType(ctx context.Context, contentTypeID string) (*ContentType, error)
	GetContentTypes(ctx context.Context, query *QueryParams) (*Collection[*ContentType], error)
	CreateContentType(ctx context.Context, contentTypeID string, fields ContentTypeFields) (*ContentType, error)
	GetEditorInterfaceForContentType(ctx context.Context, contentTypeID string) (*EditorInterface, error)
	GetEditorInterfaces(ctx context.Context) (*Collection[*EditorInterface], error)
	GetEntry(ctx context.Context, entryID string) (*Entry, error)
	GetEntries(ctx context.Context, query *QueryParams) (*Collection[*Entry], error)
	CreateEntry(ctx context.Context, contentTypeID string, fields EntryFields) (*Entry, error)
	GetLocale(ctx context.Context, localeID string) (*Locale, error)
	GetLocales(ctx context.Context, query *QueryParams) (*Collection[*Locale], error)
	CreateLocale(ctx context.Context, fields LocaleFields) (*Locale, error)
}

// Environment is an isolated copy of a space's content model and content.
type Environment struct {
	Identity
	EnvironmentFields

	makeRequest MakeRequest
}

var _ EnvironmentAPI = (*Environment)(nil)

// WrapEnvironment wraps a raw environment.
func WrapEnvironment(makeRequest MakeRequest, raw json.RawMessage) (*Environment, error) {
	identity, fields, err := Decode[EnvironmentFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping environment: %w", err)
	}

	return &Environment{Identity: identity, EnvironmentFields: fields, makeRequest: makeRequest}, nil
}

// WrapEnvironmentCollection wraps a raw collection of environments.
var WrapEnvironmentCollection = WrapCollection(WrapEnvironment)

// ToPlainObject returns a deep copy of the environment's wire view.
func (e *Environment) ToPlainObject() EnvironmentProps {
	return EnvironmentProps{Sys: e.Sys(), Extra: e.extras(), EnvironmentFields: clone(e.EnvironmentFields)}
}

// params scopes child requests to this environment; an environment's own id
// is its sys id.
func (e *Environment) params() Params {
	return Params{
		ParamSpaceID:       e.sys.Space.ID(),
		ParamEnvironmentID: e.sys.ID,
	}
}

// Update renames the environment.
func (e *Environment) Update(ctx context.Context) (*Environment, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEnvironment,
		Action:     ActionUpdate,
		Params:     e.params(),
		Payload:    e.ToPlainObject(),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEnvironment, "updating environment")
}

// Delete deletes the environment.
func (e *Environment) Delete(ctx context.Context) error {
	_, err := e.makeRequest(ctx, Request{
		EntityType: EntityEnvironment,
		Action:     ActionDelete,
		Params:     e.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting environment: %w", err)
	}

	return nil
}

// GetContentType fetches a content type.
func (e *Environment) GetContentType(ctx context.Context, contentTypeID string) (*ContentType, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionGet,
		Params:     e.params().With(ParamContentTypeID, contentTypeID),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapContentType, "getting content type")
}

// GetContentTypes lists content types.
func (e *Environment) GetContentTypes(ctx context.Context, query *QueryParams) (*Collection[*ContentType], error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionGetMany,
		Params:     e.params(),
		Query:      query,
	})

	return wrapCollectionResponse(e.makeRequest, raw, err, WrapContentTypeCollection, "listing content types")
}

// CreateContentType creates a content type, with a server-assigned id when
// contentTypeID is empty. New content types start as drafts.
func (e *Environment) CreateContentType(ctx context.Context, contentTypeID string, fields ContentTypeFields) (*ContentType, error) {
	req := Request{
		EntityType: EntityContentType,
		Action:     ActionCreate,
		Params:     e.params(),
		Payload:    fields,
	}

	if contentTypeID != "" {
		req.Action = ActionCreateWithID
		req.Params = req.Params.With(ParamContentTypeID, contentTypeID)
	}

	raw, err := e.makeRequest(ctx, req)

	return wrapResponse(e.makeRequest, raw, err, WrapContentType, "creating content type")
}

// GetEditorInterfaceForContentType fetches the editor interface of a content type.
func (e *Environment) GetEditorInterfaceForContentType(ctx context.Context, contentTypeID string) (*EditorInterface, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEditorInterface,
		Action:     ActionGet,
		Params:     e.params().With(ParamContentTypeID, contentTypeID),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEditorInterface, "getting editor interface")
}

// GetEditorInterfaces lists the editor interfaces of all content types.
func (e *Environment) GetEditorInterfaces(ctx context.Context) (*Collection[*EditorInterface], error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEditorInterface,
		Action:     ActionGetMany,
		Params:     e.params(),
	})

	return wrapCollectionResponse(e.makeRequest, raw, err, WrapEditorInterfaceCollection, "listing editor interfaces")
}

// GetEntry fetches an entry.
func (e *Environment) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     ActionGet,
		Params:     e.params().With(ParamEntryID, entryID),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEntry, "getting entry")
}

// GetEntries lists entries; filter by content type with
// query.WithFilter("content_type", id).
func (e *Environment) GetEntries(ctx context.Context, query *QueryParams) (*Collection[*Entry], error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     ActionGetMany,
		Params:     e.params(),
		Query:      query,
	})

	return wrapCollectionResponse(e.makeRequest, raw, err, WrapEntryCollection, "listing entries")
}

// CreateEntry creates an entry of the given content type.
func (e *Environment) CreateEntry(ctx context.Context, contentTypeID string, fields EntryFields) (*Entry, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityEntry,
		Action:     ActionCreate,
		Params:     e.params().With(ParamContentTypeID, contentTypeID),
		Payload:    fields,
	})

	return wrapResponse(e.makeRequest, raw, err, WrapEntry, "creating entry")
}

// GetLocale fetches a locale.
func (e *Environment) GetLocale(ctx context.Context, localeID string) (*Locale, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityLocale,
		Action:     ActionGet,
		Params:     e.params().With(ParamLocaleID, localeID),
	})

	return wrapResponse(e.makeRequest, raw, err, WrapLocale, "getting locale")
}

// GetLocales lists locales.
func (e *Environment) GetLocales(ctx context.Context, query *QueryParams) (*Collection[*Locale], error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityLocale,
		Action:     ActionGetMany,
		Params:     e.params(),
		Query:      query,
	})

	return wrapCollectionResponse(e.makeRequest, raw, err, WrapLocaleCollection, "listing locales")
}

// CreateLocale creates a locale.
func (e *Environment) CreateLocale(ctx context.Context, fields LocaleFields) (*Locale, error) {
	raw, err := e.makeRequest(ctx, Request{
		EntityType: EntityLocale,
		Action:     ActionCreate,
		Params:     e.params(),
		Payload:    fields,
	})

	return wrapResponse(e.makeRequest, raw, err, WrapLocale, "creating locale")
}
