package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// SpaceFields are the mutable fields of a space.
type SpaceFields struct {
	Name          string `json:"name"                    yaml:"name"`
	DefaultLocale string `json:"defaultLocale,omitempty" yaml:"defaultLocale,omitempty"`
}

// SpaceProps is the wire shape of a space.
type SpaceProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	SpaceFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p SpaceProps) MarshalJSON() ([]byte, error) {
	type plain SpaceProps

	return marshalWithExtra(plain(p), p.Extra)
}

// SpaceAPI is the capability set of a space.
type SpaceAPI interface {
	Sys() MetaSys
	ToPlainObject() SpaceProps
	Update(ctx context.Context) (*Space, error)
	Delete(ctx context.Context) error
	GetEnvironment(ctx context.Context, environmentID string) (*Environment, error)
	GetEnvironments(ctx context.Context, query *QueryParams) (*Collection[*Environment], error)
	CreateEnvironment(ctx context.Context, environmentID string, fields EnvironmentFields) (*Environment, error)
	CreateTeamSpaceMembership(ctx context.Context, teamID string, fields TeamSpaceMembershipFields) (*TeamSpaceMembership, error)
}

// Space is the top-level container of content.
type Space struct {
	Identity
	SpaceFields

	makeRequest MakeRequest
}

var _ SpaceAPI = (*Space)(nil)

// WrapSpace wraps a raw space.
func WrapSpace(makeRequest MakeRequest, raw json.RawMessage) (*Space, error) {
	identity, fields, err := Decode[SpaceFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping space: %w", err)
	}

	return &Space{Identity: identity, SpaceFields: fields, makeRequest: makeRequest}, nil
}

// WrapSpaceCollection wraps a raw collection of spaces.
var WrapSpaceCollection = WrapCollection(WrapSpace)

// ToPlainObject returns a deep copy of the space's wire view.
func (s *Space) ToPlainObject() SpaceProps {
	return SpaceProps{Sys: s.Sys(), Extra: s.extras(), SpaceFields: clone(s.SpaceFields)}
}

func (s *Space) params() Params {
	return Params{ParamSpaceID: s.sys.ID}
}

// Update sends the current name to the server.
func (s *Space) Update(ctx context.Context) (*Space, error) {
	raw, err := s.makeRequest(ctx, Request{
		EntityType: EntitySpace,
		Action:     ActionUpdate,
		Params:     s.params(),
		Payload:    s.ToPlainObject(),
	})

	return wrapResponse(s.makeRequest, raw, err, WrapSpace, "updating space")
}

// Delete deletes the space and everything in it.
func (s *Space) Delete(ctx context.Context) error {
	_, err := s.makeRequest(ctx, Request{
		EntityType: EntitySpace,
		Action:     ActionDelete,
		Params:     s.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting space: %w", err)
	}

	return nil
}

// GetEnvironment fetches one environment of the space.
func (s *Space) GetEnvironment(ctx context.Context, environmentID string) (*Environment, error) {
	raw, err := s.makeRequest(ctx, Request{
		EntityType: EntityEnvironment,
		Action:     ActionGet,
		Params:     s.params().With(ParamEnvironmentID, environmentID),
	})

	return wrapResponse(s.makeRequest, raw, err, WrapEnvironment, "getting environment")
}

// GetEnvironments lists the environments of the space.
func (s *Space) GetEnvironments(ctx context.Context, query *QueryParams) (*Collection[*Environment], error) {
	raw, err := s.makeRequest(ctx, Request{
		EntityType: EntityEnvironment,
		Action:     ActionGetMany,
		Params:     s.params(),
		Query:      query,
	})

	return wrapCollectionResponse(s.makeRequest, raw, err, WrapEnvironmentCollection, "listing environments")
}

// CreateEnvironment creates an environment. With an empty environmentID the
// server picks the id.
func (s *Space) CreateEnvironment(ctx context.Context, environmentID string, fields EnvironmentFields) (*Environment, error) {
	req := Request{
		EntityType: EntityEnvironment,
		Action:     ActionCreate,
		Params:     s.params(),
		Payload:    fields,
	}

	if environmentID != "" {
		req.Action = ActionCreateWithID
		req.Params = req.Params.With(ParamEnvironmentID, environmentID)
	}

	raw, err := s.makeRequest(ctx, req)

	return wrapResponse(s.makeRequest, raw, err, WrapEnvironment, "creating environment")
}

// CreateTeamSpaceMembership grants a team of the space's organization roles
// in the space.
func (s *Space) CreateTeamSpaceMembership(ctx context.Context, teamID string, fields TeamSpaceMembershipFields) (*TeamSpaceMembership, error) {
	raw, err := s.makeRequest(ctx, Request{
		EntityType: EntityTeamSpaceMembership,
		Action:     ActionCreate,
		Params:     s.params().With(ParamTeamID, teamID),
		Payload:    fields,
	})

	return wrapResponse(s.makeRequest, raw, err, WrapTeamSpaceMembership, "creating team space membership")
}
