package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cma/pkg/cma"
)

// GetCurrentUser implements cma.Client.GetCurrentUser.
func (c *Client) GetCurrentUser(ctx context.Context) (*cma.User, error) {
	raw, err := c.makeRequest(ctx, cma.Request{
		EntityType: cma.EntityUser,
		Action:     cma.ActionGetCurrent,
	})
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return cma.WrapUser(c.makeRequest, raw)
}
