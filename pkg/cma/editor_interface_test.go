package cma_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updatedEditorInterfaceJSON = `{
	"sys": {
		"type": "EditorInterface",
		"id": "default",
		"version": 4,
		` + spaceLinks + `,
		"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "ct1"}}
	},
	"controls": [
		{"fieldId": "title", "widgetNamespace": "builtin", "widgetId": "slugEditor"}
	]
}`

func TestEditorInterface_GetControlForField(t *testing.T) {
	t.Parallel()

	ei, err := cma.WrapEditorInterface(newFakeAPI().makeRequest, json.RawMessage(editorInterfaceJSON))
	require.NoError(t, err)

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()

		control := ei.GetControlForField("title")
		require.NotNil(t, control)
		assert.Equal(t, "singleLine", control.WidgetID)
	})

	t.Run("settings are kept", func(t *testing.T) {
		t.Parallel()

		control := ei.GetControlForField("body")
		require.NotNil(t, control)
		assert.Equal(t, cma.WidgetSettings{"helpText": "Write here"}, control.Settings)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ei.GetControlForField("nope"))
	})
}

func TestEditorInterface_GetControlForField_NoControls(t *testing.T) {
	t.Parallel()

	ei, err := cma.WrapEditorInterface(newFakeAPI().makeRequest, json.RawMessage(`{"sys": {"id": "default"}}`))
	require.NoError(t, err)

	assert.Nil(t, ei.GetControlForField("title"))
}

func TestEditorInterface_Update(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityEditorInterface, cma.ActionUpdate, updatedEditorInterfaceJSON)

	ei, err := cma.WrapEditorInterface(api.makeRequest, json.RawMessage(editorInterfaceJSON))
	require.NoError(t, err)

	ei.GetControlForField("title").WidgetID = "slugEditor"

	updated, err := ei.Update(t.Context())
	require.NoError(t, err)

	require.Equal(t, 1, api.count())

	req := api.last()
	assert.Equal(t, cma.EntityEditorInterface, req.EntityType)
	assert.Equal(t, cma.ActionUpdate, req.Action)
	assert.Equal(t, cma.Params{
		cma.ParamSpaceID:       "sp1",
		cma.ParamEnvironmentID: "env1",
		cma.ParamContentTypeID: "ct1",
	}, req.Params)

	payload, ok := req.Payload.(cma.EditorInterfaceProps)
	require.True(t, ok)
	assert.Equal(t, 3, payload.Sys.Version)
	assert.Equal(t, "slugEditor", payload.Controls[0].WidgetID)

	assert.Equal(t, 4, updated.Sys().Version)
	assert.Equal(t, "slugEditor", updated.GetControlForField("title").WidgetID)
	assert.Nil(t, updated.GetControlForField("body"))

	assert.Equal(t, 3, ei.Sys().Version)
	assert.NotSame(t, ei, updated)
}

func TestEditorInterface_KeepsEmptyLists(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityEditorInterface, cma.ActionUpdate, updatedEditorInterfaceJSON)

	ei, err := cma.WrapEditorInterface(api.makeRequest, json.RawMessage(`{
		"sys": {
			"id": "default",
			"version": 1,
			`+spaceLinks+`,
			"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "ct1"}}
		},
		"controls": [],
		"sidebar": []
	}`))
	require.NoError(t, err)

	assert.NotNil(t, ei.Controls)
	assert.NotNil(t, ei.Sidebar)
	assert.Nil(t, ei.Editors)

	raw, err := cma.Raw(ei.ToPlainObject())
	require.NoError(t, err)

	again, err := cma.WrapEditorInterface(api.makeRequest, raw)
	require.NoError(t, err)
	assert.Equal(t, ei.ToPlainObject(), again.ToPlainObject())

	_, err = ei.Update(t.Context())
	require.NoError(t, err)

	payload, err := json.Marshal(api.last().Payload)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.JSONEq(t, `[]`, string(body["controls"]))
	assert.JSONEq(t, `[]`, string(body["sidebar"]))
	assert.NotContains(t, body, "editors")
	assert.NotContains(t, body, "groupControls")
}

func TestEditorInterface_Update_PayloadIsSnapshot(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityEditorInterface, cma.ActionUpdate, updatedEditorInterfaceJSON)

	ei, err := cma.WrapEditorInterface(api.makeRequest, json.RawMessage(editorInterfaceJSON))
	require.NoError(t, err)

	_, err = ei.Update(t.Context())
	require.NoError(t, err)

	ei.Controls[0].WidgetID = "changed later"

	payload, ok := api.last().Payload.(cma.EditorInterfaceProps)
	require.True(t, ok)
	assert.Equal(t, "singleLine", payload.Controls[0].WidgetID)
}

func TestEditorInterface_Update_DefaultEnvironment(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityEditorInterface, cma.ActionUpdate, updatedEditorInterfaceJSON)

	ei, err := cma.WrapEditorInterface(api.makeRequest, json.RawMessage(`{
		"sys": {
			"id": "default",
			"space": {"sys": {"type": "Link", "linkType": "Space", "id": "sp1"}},
			"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "ct1"}}
		}
	}`))
	require.NoError(t, err)

	_, err = ei.Update(t.Context())
	require.NoError(t, err)

	assert.Equal(t, cma.DefaultEnvironmentID, api.last().Params[cma.ParamEnvironmentID])
}

func TestEditorInterface_Update_Error(t *testing.T) {
	t.Parallel()

	apiErr := &cma.APIError{
		StatusCode: http.StatusConflict,
		Sys:        cma.ErrorSys{Type: "Error", ID: cma.ErrorIDVersionMismatch},
		Message:    "version mismatch",
	}
	api := newFakeAPI().fail(apiErr)

	ei, err := cma.WrapEditorInterface(api.makeRequest, json.RawMessage(editorInterfaceJSON))
	require.NoError(t, err)

	updated, err := ei.Update(t.Context())
	require.Error(t, err)
	assert.Nil(t, updated)

	var got *cma.APIError
	require.True(t, errors.As(err, &got))
	assert.Same(t, apiErr, got)
	assert.True(t, cma.IsVersionMismatch(err))
	assert.Contains(t, err.Error(), "updating editor interface")

	assert.Equal(t, 3, ei.Sys().Version)
}

func TestEditorInterface_FullShape(t *testing.T) {
	t.Parallel()

	ei, err := cma.WrapEditorInterface(newFakeAPI().makeRequest, json.RawMessage(`{
		"sys": {"id": "default"},
		"groupControls": [{"groupId": "seo", "widgetId": "fieldset"}],
		"editors": [{"widgetNamespace": "editor-builtin", "widgetId": "default-editor", "disabled": true}],
		"editorLayout": [{"groupId": "seo", "name": "SEO", "items": [{"fieldId": "slug"}]}]
	}`))
	require.NoError(t, err)

	require.Len(t, ei.GroupControls, 1)
	assert.Equal(t, "seo", ei.GroupControls[0].GroupID)
	require.Len(t, ei.Editors, 1)
	assert.True(t, ei.Editors[0].Disabled)
	require.Len(t, ei.EditorLayout, 1)
	assert.Equal(t, "slug", ei.EditorLayout[0].Items[0].FieldID)
	assert.Nil(t, ei.Editor)
}
