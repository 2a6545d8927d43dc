package cma_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fivetwenty-io/cma/pkg/cma"
)

// fakeAPI records every request and answers with canned responses keyed by
// "EntityType.Action". Unknown keys answer with the fallback response.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []cma.Request
	responses map[string]json.RawMessage
	fallback  json.RawMessage
	err       error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: make(map[string]json.RawMessage)}
}

func (f *fakeAPI) respond(entityType, action, body string) *fakeAPI {
	f.responses[entityType+"."+action] = json.RawMessage(body)

	return f
}

func (f *fakeAPI) fail(err error) *fakeAPI {
	f.err = err

	return f
}

func (f *fakeAPI) makeRequest(_ context.Context, req cma.Request) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)

	if f.err != nil {
		return nil, f.err
	}

	if body, ok := f.responses[req.EntityType+"."+req.Action]; ok {
		return body, nil
	}

	if f.fallback != nil {
		return f.fallback, nil
	}

	return json.RawMessage(`{"sys":{"type":"Unknown","id":"none"}}`), nil
}

func (f *fakeAPI) last() cma.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.requests) == 0 {
		return cma.Request{}
	}

	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

const spaceLinks = `"space":{"sys":{"type":"Link","linkType":"Space","id":"sp1"}},
		"environment":{"sys":{"type":"Link","linkType":"Environment","id":"env1"}}`

const editorInterfaceJSON = `{
	"sys": {
		"type": "EditorInterface",
		"id": "default",
		"version": 3,
		` + spaceLinks + `,
		"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "ct1"}}
	},
	"controls": [
		{"fieldId": "title", "widgetNamespace": "builtin", "widgetId": "singleLine"},
		{"fieldId": "body", "widgetNamespace": "builtin", "widgetId": "markdown", "settings": {"helpText": "Write here"}},
		{"fieldId": "title", "widgetId": "duplicate"}
	],
	"sidebar": [
		{"widgetNamespace": "sidebar-builtin", "widgetId": "publication-widget"}
	]
}`

const entryJSON = `{
	"sys": {
		"type": "Entry",
		"id": "e1",
		"version": 5,
		"publishedVersion": 4,
		` + spaceLinks + `,
		"contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "blogPost"}}
	},
	"fields": {
		"title": {"en-US": "Hello", "de-DE": "Hallo"},
		"views": {"en-US": 42},
		"tags": {"en-US": ["go", "api"]}
	}
}`

const contentTypeJSON = `{
	"sys": {"type": "ContentType", "id": "blogPost", "version": 2, ` + spaceLinks + `},
	"name": "Blog Post",
	"displayField": "title",
	"fields": [
		{"id": "title", "name": "Title", "type": "Symbol", "localized": true, "required": true},
		{"id": "tags", "name": "Tags", "type": "Array", "items": {"type": "Symbol"}}
	]
}`

const organizationJSON = `{"sys": {"type": "Organization", "id": "org1", "version": 1}, "name": "Acme"}`

func environmentJSON(id string) string {
	return `{"sys": {"type": "Environment", "id": "` + id + `", "version": 1,
		"space": {"sys": {"type": "Link", "linkType": "Space", "id": "sp1"}}}, "name": "` + id + `"}`
}
