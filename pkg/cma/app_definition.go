package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// AppLocation is a place in the web app where an app renders.
type AppLocation struct {
	Location   string   `json:"location"             yaml:"location"`
	FieldTypes []string `json:"fieldTypes,omitzero"  yaml:"fieldTypes,omitempty"`
}

// AppDefinitionFields are the mutable fields of an app definition.
type AppDefinitionFields struct {
	Name      string        `json:"name"                yaml:"name"`
	Src       string        `json:"src,omitempty"       yaml:"src,omitempty"`
	Locations []AppLocation `json:"locations,omitzero"  yaml:"locations,omitempty"`
}

// AppDefinitionProps is the wire shape of an app definition.
type AppDefinitionProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	AppDefinitionFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p AppDefinitionProps) MarshalJSON() ([]byte, error) {
	type plain AppDefinitionProps

	return marshalWithExtra(plain(p), p.Extra)
}

// AppDefinitionAPI is the capability set of an app definition.
type AppDefinitionAPI interface {
	Sys() MetaSys
	ToPlainObject() AppDefinitionProps
	Update(ctx context.Context) (*AppDefinition, error)
	Delete(ctx context.Context) error
}

// AppDefinition describes an app owned by an organization.
type AppDefinition struct {
	Identity
	AppDefinitionFields

	makeRequest MakeRequest
}

var _ AppDefinitionAPI = (*AppDefinition)(nil)

// WrapAppDefinition wraps a raw app definition.
func WrapAppDefinition(makeRequest MakeRequest, raw json.RawMessage) (*AppDefinition, error) {
	identity, fields, err := Decode[AppDefinitionFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping app definition: %w", err)
	}

	return &AppDefinition{Identity: identity, AppDefinitionFields: fields, makeRequest: makeRequest}, nil
}

// WrapAppDefinitionCollection wraps a raw collection of app definitions.
var WrapAppDefinitionCollection = WrapCollection(WrapAppDefinition)

// ToPlainObject returns a deep copy of the app definition's wire view.
func (a *AppDefinition) ToPlainObject() AppDefinitionProps {
	return AppDefinitionProps{Sys: a.Sys(), Extra: a.extras(), AppDefinitionFields: clone(a.AppDefinitionFields)}
}

func (a *AppDefinition) params() Params {
	return Params{
		ParamOrganizationID:  a.sys.Organization.ID(),
		ParamAppDefinitionID: a.sys.ID,
	}
}

// Update sends the current definition to the server.
func (a *AppDefinition) Update(ctx context.Context) (*AppDefinition, error) {
	raw, err := a.makeRequest(ctx, Request{
		EntityType: EntityAppDefinition,
		Action:     ActionUpdate,
		Params:     a.params(),
		Payload:    a.ToPlainObject(),
	})

	return wrapResponse(a.makeRequest, raw, err, WrapAppDefinition, "updating app definition")
}

// Delete deletes the app definition.
func (a *AppDefinition) Delete(ctx context.Context) error {
	_, err := a.makeRequest(ctx, Request{
		EntityType: EntityAppDefinition,
		Action:     ActionDelete,
		Params:     a.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting app definition: %w", err)
	}

	return nil
}
