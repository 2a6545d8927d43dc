package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cliSpaceJSON       = `{"sys":{"type":"Space","id":"sp1"},"name":"Blog"}`
	cliEnvironmentJSON = `{"sys":{"type":"Environment","id":"master",
		"space":{"sys":{"type":"Link","linkType":"Space","id":"sp1"}}},"name":"master"}`
	cliEditorInterfaceJSON = `{
		"sys": {
			"type": "EditorInterface", "id": "default", "version": 3,
			"space": {"sys": {"type": "Link", "linkType": "Space", "id": "sp1"}},
			"environment": {"sys": {"type": "Link", "linkType": "Environment", "id": "master"}},
			"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "blogPost"}}
		},
		"controls": [
			{"fieldId": "title", "widgetNamespace": "builtin", "widgetId": "singleLine"},
			{"fieldId": "body", "widgetNamespace": "builtin", "widgetId": "markdown"}
		]
	}`
)

const editorInterfacePath = "/spaces/sp1/environments/master/content_types/blogPost/editor_interface"

// useServer points the global CLI configuration at server for one test.
func useServer(t *testing.T, server *httptest.Server) {
	t.Helper()

	viper.Set("api", server.URL)
	viper.Set("token", "test-token")
	viper.Set("space", "sp1")
	viper.Set("output", constants.FormatTable)
	t.Cleanup(viper.Reset)
}

func TestParseSettings(t *testing.T) {
	t.Parallel()

	settings, err := ParseSettings([]string{"helpText=Pick one", "trueLabel=true", "stars=5", "empty="})
	require.NoError(t, err)
	assert.Equal(t, cma.WidgetSettings{
		"helpText":  "Pick one",
		"trueLabel": true,
		"stars":     float64(5),
		"empty":     "",
	}, settings)

	_, err = ParseSettings([]string{"novalue"})
	require.ErrorIs(t, err, constants.ErrInvalidSettingValue)

	_, err = ParseSettings([]string{"=x"})
	require.ErrorIs(t, err, constants.ErrInvalidSettingValue)
}

func TestFormatSettings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, constants.None, FormatSettings(nil))
	assert.Equal(t, "a=1, b=true", FormatSettings(cma.WidgetSettings{"b": true, "a": 1}))
}

func TestNewEditorInterfaceCommand(t *testing.T) {
	t.Parallel()

	cmd := NewEditorInterfaceCommand()
	assert.Equal(t, "editor-interface", cmd.Use)
	assert.Equal(t, []string{"ei"}, cmd.Aliases)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"get", "control", "set-control"}, names)

	setControl := newEditorInterfaceSetControlCommand()
	for _, flag := range []string{"widget-id", "widget-namespace", "setting"} {
		assert.NotNil(t, setControl.Flags().Lookup(flag), "flag %s should exist", flag)
	}
}

func TestEditorInterfaceSetControl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method + " " + request.URL.Path {
		case "GET /spaces/sp1":
			_, _ = writer.Write([]byte(cliSpaceJSON))
		case "GET /spaces/sp1/environments/master":
			_, _ = writer.Write([]byte(cliEnvironmentJSON))
		case "GET " + editorInterfacePath:
			_, _ = writer.Write([]byte(cliEditorInterfaceJSON))
		case "PUT " + editorInterfacePath:
			assert.Equal(t, "3", request.Header.Get(constants.HeaderVersion))

			body, _ := io.ReadAll(request.Body)

			var sent cma.EditorInterfaceFields
			assert.NoError(t, json.Unmarshal(body, &sent))
			assert.Len(t, sent.Controls, 2)
			assert.Equal(t, cma.Control{
				FieldID:         "title",
				WidgetNamespace: "builtin",
				WidgetID:        "dropdown",
				Settings:        cma.WidgetSettings{"helpText": "Pick one"},
			}, sent.Controls[0])
			assert.Equal(t, "markdown", sent.Controls[1].WidgetID)

			_, _ = writer.Write([]byte(`{"sys":{"type":"EditorInterface","id":"default","version":4},"controls":[]}`))
		default:
			t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	useServer(t, server)

	cmd := NewEditorInterfaceCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"set-control", "blogPost", "title", "--widget-id", "dropdown", "--setting", "helpText=Pick one"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "Updated control of title (version 4)\n", out.String())
}

func TestEditorInterfaceControl_UnknownField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/spaces/sp1":
			_, _ = writer.Write([]byte(cliSpaceJSON))
		case "/spaces/sp1/environments/master":
			_, _ = writer.Write([]byte(cliEnvironmentJSON))
		case editorInterfacePath:
			_, _ = writer.Write([]byte(cliEditorInterfaceJSON))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	useServer(t, server)

	cmd := NewEditorInterfaceCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"control", "blogPost", "slug"})

	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, constants.ErrControlNotFound)
}

func TestEditorInterfaceGet_NoSpace(t *testing.T) {
	viper.Set("token", "test-token")
	t.Cleanup(viper.Reset)

	cmd := NewEditorInterfaceCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"get", "blogPost"})

	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, constants.ErrNoSpaceSelected)
}
