package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
)

// GetOrganizations implements cma.Client.GetOrganizations.
func (c *Client) GetOrganizations(ctx context.Context, query *cma.QueryParams) (*cma.Collection[*cma.Organization], error) {
	raw, err := c.makeRequest(ctx, cma.Request{
		EntityType: cma.EntityOrganization,
		Action:     cma.ActionGetAll,
		Query:      query,
	})
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	return cma.WrapOrganizationCollection(c.makeRequest, raw)
}

// GetOrganization implements cma.Client.GetOrganization. The API has no
// single-organization endpoint, so the organizations visible to the token
// are scanned page by page; a miss is reported as a NotFound APIError.
func (c *Client) GetOrganization(ctx context.Context, organizationID string) (*cma.Organization, error) {
	query := cma.NewQueryParams().WithLimit(constants.DefaultPageLimit)
	iterator := cma.NewPageIterator(ctx, c.GetOrganizations, query)

	for iterator.HasNext() {
		org, err := iterator.Next()
		if err != nil {
			if errors.Is(err, cma.ErrNoMoreItems) {
				break
			}

			return nil, fmt.Errorf("getting organization %s: %w", organizationID, err)
		}

		if org.ID() == organizationID {
			return org, nil
		}
	}

	return nil, &cma.APIError{
		StatusCode: http.StatusNotFound,
		Sys:        cma.ErrorSys{Type: "Error", ID: cma.ErrorIDNotFound},
		Message:    "organization " + organizationID + " not found",
	}
}
