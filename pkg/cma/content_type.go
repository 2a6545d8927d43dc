package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// FieldItems describes the element type of an Array field.
type FieldItems struct {
	Type        string           `json:"type"                  yaml:"type"`
	LinkType    string           `json:"linkType,omitempty"    yaml:"linkType,omitempty"`
	Validations []map[string]any `json:"validations,omitzero"  yaml:"validations,omitempty"`
}

// ContentTypeField is one field of a content model.
type ContentTypeField struct {
	ID           string           `json:"id"                     yaml:"id"`
	Name         string           `json:"name"                   yaml:"name"`
	Type         string           `json:"type"                   yaml:"type"`
	LinkType     string           `json:"linkType,omitempty"     yaml:"linkType,omitempty"`
	Items        *FieldItems      `json:"items,omitempty"        yaml:"items,omitempty"`
	Localized    bool             `json:"localized"              yaml:"localized"`
	Required     bool             `json:"required"               yaml:"required"`
	Disabled     bool             `json:"disabled,omitempty"     yaml:"disabled,omitempty"`
	Omitted      bool             `json:"omitted,omitempty"      yaml:"omitted,omitempty"`
	Validations  []map[string]any `json:"validations,omitzero"   yaml:"validations,omitempty"`
	DefaultValue map[string]any   `json:"defaultValue,omitzero"  yaml:"defaultValue,omitempty"`
}

// ContentTypeFields are the mutable fields of a content type.
type ContentTypeFields struct {
	Name         string             `json:"name"                   yaml:"name"`
	Description  string             `json:"description,omitempty"  yaml:"description,omitempty"`
	DisplayField string             `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Fields       []ContentTypeField `json:"fields"                 yaml:"fields"`
}

// ContentTypeProps is the wire shape of a content type.
type ContentTypeProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	ContentTypeFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p ContentTypeProps) MarshalJSON() ([]byte, error) {
	type plain ContentTypeProps

	return marshalWithExtra(plain(p), p.Extra)
}

// ContentTypeAPI is the capability set of a content type.
type ContentTypeAPI interface {
	Sys() MetaSys
	ToPlainObject() ContentTypeProps
	Update(ctx context.Context) (*ContentType, error)
	Delete(ctx context.Context) error
	Publish(ctx context.Context) (*ContentType, error)
	Unpublish(ctx context.Context) (*ContentType, error)
	GetEditorInterface(ctx context.Context) (*EditorInterface, error)
	GetField(fieldID string) *ContentTypeField
	IsDraft() bool
	IsPublished() bool
	IsUpdated() bool
}

// ContentType is a content model: the list of fields its entries carry.
type ContentType struct {
	Identity
	ContentTypeFields

	makeRequest MakeRequest
}

var _ ContentTypeAPI = (*ContentType)(nil)

// WrapContentType wraps a raw content type.
func WrapContentType(makeRequest MakeRequest, raw json.RawMessage) (*ContentType, error) {
	identity, fields, err := Decode[ContentTypeFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping content type: %w", err)
	}

	return &ContentType{Identity: identity, ContentTypeFields: fields, makeRequest: makeRequest}, nil
}

// WrapContentTypeCollection wraps a raw collection of content types.
var WrapContentTypeCollection = WrapCollection(WrapContentType)

// ToPlainObject returns a deep copy of the content type's wire view.
func (ct *ContentType) ToPlainObject() ContentTypeProps {
	return ContentTypeProps{Sys: ct.Sys(), Extra: ct.extras(), ContentTypeFields: clone(ct.ContentTypeFields)}
}

func (ct *ContentType) params() Params {
	return ct.spaceParams().With(ParamContentTypeID, ct.sys.ID)
}

// Update sends the current model to the server.
func (ct *ContentType) Update(ctx context.Context) (*ContentType, error) {
	raw, err := ct.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionUpdate,
		Params:     ct.params(),
		Payload:    ct.ToPlainObject(),
	})

	return wrapResponse(ct.makeRequest, raw, err, WrapContentType, "updating content type")
}

// Delete deletes the content type. Published content types must be
// unpublished first.
func (ct *ContentType) Delete(ctx context.Context) error {
	_, err := ct.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionDelete,
		Params:     ct.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting content type: %w", err)
	}

	return nil
}

// Publish publishes the current version.
func (ct *ContentType) Publish(ctx context.Context) (*ContentType, error) {
	raw, err := ct.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionPublish,
		Params:     ct.params().WithVersion(ct.sys.Version),
	})

	return wrapResponse(ct.makeRequest, raw, err, WrapContentType, "publishing content type")
}

// Unpublish withdraws the published version.
func (ct *ContentType) Unpublish(ctx context.Context) (*ContentType, error) {
	raw, err := ct.makeRequest(ctx, Request{
		EntityType: EntityContentType,
		Action:     ActionUnpublish,
		Params:     ct.params(),
	})

	return wrapResponse(ct.makeRequest, raw, err, WrapContentType, "unpublishing content type")
}

// GetEditorInterface fetches the editor interface of this content type.
func (ct *ContentType) GetEditorInterface(ctx context.Context) (*EditorInterface, error) {
	raw, err := ct.makeRequest(ctx, Request{
		EntityType: EntityEditorInterface,
		Action:     ActionGet,
		Params:     ct.params(),
	})

	return wrapResponse(ct.makeRequest, raw, err, WrapEditorInterface, "getting editor interface")
}

// GetField returns the field with the given id, or nil.
func (ct *ContentType) GetField(fieldID string) *ContentTypeField {
	for i := range ct.Fields {
		if ct.Fields[i].ID == fieldID {
			return &ct.Fields[i]
		}
	}

	return nil
}

// IsDraft reports whether the content type was never published.
func (ct *ContentType) IsDraft() bool { return ct.isDraft() }

// IsPublished reports whether the published version is the current one.
func (ct *ContentType) IsPublished() bool { return ct.isPublished() }

// IsUpdated reports whether there are changes since the last publish.
func (ct *ContentType) IsUpdated() bool { return ct.isUpdated() }
