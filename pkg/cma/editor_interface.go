package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// WidgetSettings holds instance parameter values of a widget.
type WidgetSettings map[string]any

// Control assigns a widget to a content type field.
type Control struct {
	FieldID         string         `json:"fieldId"                   yaml:"fieldId"`
	WidgetNamespace string         `json:"widgetNamespace,omitempty" yaml:"widgetNamespace,omitempty"`
	WidgetID        string         `json:"widgetId,omitempty"        yaml:"widgetId,omitempty"`
	Settings        WidgetSettings `json:"settings,omitzero"         yaml:"settings,omitempty"`
}

// GroupControl assigns a widget to a field group.
type GroupControl struct {
	GroupID         string         `json:"groupId"                   yaml:"groupId"`
	WidgetNamespace string         `json:"widgetNamespace,omitempty" yaml:"widgetNamespace,omitempty"`
	WidgetID        string         `json:"widgetId,omitempty"        yaml:"widgetId,omitempty"`
	Settings        WidgetSettings `json:"settings,omitzero"         yaml:"settings,omitempty"`
}

// EditorLayoutItem is either a field group (GroupID, Name, Items) or a
// reference to a single field (FieldID).
type EditorLayoutItem struct {
	GroupID string             `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	Name    string             `json:"name,omitempty"    yaml:"name,omitempty"`
	Items   []EditorLayoutItem `json:"items,omitzero"    yaml:"items,omitempty"`
	Default bool               `json:"default,omitempty" yaml:"default,omitempty"`
	FieldID string             `json:"fieldId,omitempty" yaml:"fieldId,omitempty"`
}

// Editor is an entry editor widget. It is enabled unless Disabled is set.
type Editor struct {
	WidgetNamespace string         `json:"widgetNamespace"    yaml:"widgetNamespace"`
	WidgetID        string         `json:"widgetId"           yaml:"widgetId"`
	Disabled        bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Settings        WidgetSettings `json:"settings,omitzero"  yaml:"settings,omitempty"`
}

// SidebarItem is a sidebar widget. It is enabled unless Disabled is set.
type SidebarItem struct {
	WidgetNamespace string         `json:"widgetNamespace"    yaml:"widgetNamespace"`
	WidgetID        string         `json:"widgetId"           yaml:"widgetId"`
	Disabled        bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Settings        WidgetSettings `json:"settings,omitzero"  yaml:"settings,omitempty"`
}

// EditorInterfaceFields are the mutable fields of an editor interface.
// Missing Editors or Sidebar make the web app fall back to its defaults.
type EditorInterfaceFields struct {
	Controls      []Control          `json:"controls,omitzero"       yaml:"controls,omitempty"`
	GroupControls []GroupControl     `json:"groupControls,omitzero"  yaml:"groupControls,omitempty"`
	Editors       []Editor           `json:"editors,omitzero"        yaml:"editors,omitempty"`
	Editor        *Editor            `json:"editor,omitempty"        yaml:"editor,omitempty"`
	EditorLayout  []EditorLayoutItem `json:"editorLayout,omitzero"   yaml:"editorLayout,omitempty"`
	Sidebar       []SidebarItem      `json:"sidebar,omitzero"        yaml:"sidebar,omitempty"`
}

// EditorInterfaceProps is the wire shape of an editor interface.
type EditorInterfaceProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	EditorInterfaceFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p EditorInterfaceProps) MarshalJSON() ([]byte, error) {
	type plain EditorInterfaceProps

	return marshalWithExtra(plain(p), p.Extra)
}

// EditorInterfaceAPI is the capability set of an editor interface.
type EditorInterfaceAPI interface {
	Sys() MetaSys
	ToPlainObject() EditorInterfaceProps
	GetControlForField(fieldID string) *Control
	Update(ctx context.Context) (*EditorInterface, error)
}

// EditorInterface describes how the fields of one content type are edited.
type EditorInterface struct {
	Identity
	EditorInterfaceFields

	makeRequest MakeRequest
}

var _ EditorInterfaceAPI = (*EditorInterface)(nil)

// WrapEditorInterface wraps a raw editor interface.
func WrapEditorInterface(makeRequest MakeRequest, raw json.RawMessage) (*EditorInterface, error) {
	identity, fields, err := Decode[EditorInterfaceFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping editor interface: %w", err)
	}

	return &EditorInterface{Identity: identity, EditorInterfaceFields: fields, makeRequest: makeRequest}, nil
}

// WrapEditorInterfaceCollection wraps a raw collection of editor interfaces.
var WrapEditorInterfaceCollection = WrapCollection(WrapEditorInterface)

// ToPlainObject returns a deep copy of the editor interface's wire view.
func (ei *EditorInterface) ToPlainObject() EditorInterfaceProps {
	return EditorInterfaceProps{Sys: ei.Sys(), Extra: ei.extras(), EditorInterfaceFields: clone(ei.EditorInterfaceFields)}
}

// GetControlForField returns the control of the given field, or nil when the
// field has none. The returned control may be edited in place before Update.
func (ei *EditorInterface) GetControlForField(fieldID string) *Control {
	for i := range ei.Controls {
		if ei.Controls[i].FieldID == fieldID {
			return &ei.Controls[i]
		}
	}

	return nil
}

// Update sends the current state to the server and returns the stored
// editor interface. The receiver is left untouched.
func (ei *EditorInterface) Update(ctx context.Context) (*EditorInterface, error) {
	raw, err := ei.makeRequest(ctx, Request{
		EntityType: EntityEditorInterface,
		Action:     ActionUpdate,
		Params:     ei.spaceParams().With(ParamContentTypeID, ei.sys.ContentType.ID()),
		Payload:    ei.ToPlainObject(),
	})

	return wrapResponse(ei.makeRequest, raw, err, WrapEditorInterface, "updating editor interface")
}
