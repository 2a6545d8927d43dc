package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/cma/internal/constants"
	cmahttp "github.com/fivetwenty-io/cma/internal/http"
	"github.com/fivetwenty-io/cma/pkg/cma"
)

// Doer sends an HTTP request. *http.Client from internal/http satisfies it.
type Doer interface {
	Do(ctx context.Context, req *cmahttp.Request) (*cmahttp.Response, error)
}

// NewMakeRequest returns the transport callable entities are bound to.
//
// Payloads are sent without their sys block. For versioned writes the
// X-Contentful-Version header comes from the version param, or else from the
// payload's sys.version. Transport errors are returned unchanged.
func NewMakeRequest(doer Doer) cma.MakeRequest {
	return func(ctx context.Context, req cma.Request) (json.RawMessage, error) {
		endpoint, err := Resolve(req.EntityType, req.Action, req.Params)
		if err != nil {
			return nil, err
		}

		body, payloadVersion, err := encodePayload(req.Payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", req.EntityType, err)
		}

		headers := endpoint.Headers
		for key, value := range req.Headers {
			headers[key] = value
		}

		version := req.Params[cma.ParamVersion]
		if version == "" && endpoint.Versioned && payloadVersion > 0 {
			version = strconv.Itoa(payloadVersion)
		}

		if version != "" {
			headers[constants.HeaderVersion] = version
		}

		httpReq := &cmahttp.Request{
			Method:  endpoint.Method,
			Path:    endpoint.Path,
			Query:   req.Query.ToValues(),
			Headers: headers,
		}

		if body != nil {
			httpReq.Body = body
		}

		resp, err := doer.Do(ctx, httpReq)
		if err != nil {
			return nil, err
		}

		if len(resp.Body) == 0 {
			return nil, nil
		}

		return json.RawMessage(resp.Body), nil
	}
}

// encodePayload marshals payload and strips its sys block, returning the
// sys.version it carried.
func encodePayload(payload any) (json.RawMessage, int, error) {
	if payload == nil {
		return nil, 0, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	var object map[string]json.RawMessage

	err = json.Unmarshal(raw, &object)
	if err != nil || object == nil {
		return raw, 0, nil //nolint:nilerr // non-object payloads are sent as they are
	}

	sysRaw, ok := object["sys"]
	if !ok {
		return raw, 0, nil
	}

	var sys struct {
		Version int `json:"version"`
	}

	err = json.Unmarshal(sysRaw, &sys)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding sys: %w", err)
	}

	delete(object, "sys")

	stripped, err := json.Marshal(object)
	if err != nil {
		return nil, 0, err
	}

	return stripped, sys.Version, nil
}
