package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cma/pkg/cma"
)

// GetSpace implements cma.Client.GetSpace.
func (c *Client) GetSpace(ctx context.Context, spaceID string) (*cma.Space, error) {
	raw, err := c.makeRequest(ctx, cma.Request{
		EntityType: cma.EntitySpace,
		Action:     cma.ActionGet,
		Params:     cma.Params{cma.ParamSpaceID: spaceID},
	})
	if err != nil {
		return nil, fmt.Errorf("getting space %s: %w", spaceID, err)
	}

	return cma.WrapSpace(c.makeRequest, raw)
}

// GetSpaces implements cma.Client.GetSpaces.
func (c *Client) GetSpaces(ctx context.Context, query *cma.QueryParams) (*cma.Collection[*cma.Space], error) {
	raw, err := c.makeRequest(ctx, cma.Request{
		EntityType: cma.EntitySpace,
		Action:     cma.ActionGetMany,
		Query:      query,
	})
	if err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}

	return cma.WrapSpaceCollection(c.makeRequest, raw)
}

// CreateSpace implements cma.Client.CreateSpace.
func (c *Client) CreateSpace(ctx context.Context, organizationID string, fields cma.SpaceFields) (*cma.Space, error) {
	raw, err := c.makeRequest(ctx, cma.Request{
		EntityType: cma.EntitySpace,
		Action:     cma.ActionCreate,
		Params:     cma.Params{cma.ParamOrganizationID: organizationID},
		Payload:    fields,
	})
	if err != nil {
		return nil, fmt.Errorf("creating space: %w", err)
	}

	return cma.WrapSpace(c.makeRequest, raw)
}
