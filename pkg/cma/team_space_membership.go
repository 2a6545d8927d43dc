package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// TeamSpaceMembershipFields are the mutable fields of a team space membership.
type TeamSpaceMembershipFields struct {
	Admin bool   `json:"admin" yaml:"admin"`
	Roles []Link `json:"roles" yaml:"roles"`
}

// TeamSpaceMembershipProps is the wire shape of a team space membership.
type TeamSpaceMembershipProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	TeamSpaceMembershipFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p TeamSpaceMembershipProps) MarshalJSON() ([]byte, error) {
	type plain TeamSpaceMembershipProps

	return marshalWithExtra(plain(p), p.Extra)
}

// TeamSpaceMembershipAPI is the capability set of a team space membership.
type TeamSpaceMembershipAPI interface {
	Sys() MetaSys
	ToPlainObject() TeamSpaceMembershipProps
	Update(ctx context.Context) (*TeamSpaceMembership, error)
	Delete(ctx context.Context) error
}

// TeamSpaceMembership grants a team roles in a space.
type TeamSpaceMembership struct {
	Identity
	TeamSpaceMembershipFields

	makeRequest MakeRequest
}

var _ TeamSpaceMembershipAPI = (*TeamSpaceMembership)(nil)

// WrapTeamSpaceMembership wraps a raw team space membership.
func WrapTeamSpaceMembership(makeRequest MakeRequest, raw json.RawMessage) (*TeamSpaceMembership, error) {
	identity, fields, err := Decode[TeamSpaceMembershipFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping team space membership: %w", err)
	}

	return &TeamSpaceMembership{Identity: identity, TeamSpaceMembershipFields: fields, makeRequest: makeRequest}, nil
}

// WrapTeamSpaceMembershipCollection wraps a raw collection of team space memberships.
var WrapTeamSpaceMembershipCollection = WrapCollection(WrapTeamSpaceMembership)

// ToPlainObject returns a deep copy of the membership's wire view.
func (m *TeamSpaceMembership) ToPlainObject() TeamSpaceMembershipProps {
	return TeamSpaceMembershipProps{Sys: m.Sys(), Extra: m.extras(), TeamSpaceMembershipFields: clone(m.TeamSpaceMembershipFields)}
}

// params addresses the membership through its space; the team travels in a
// header the transport derives from ParamTeamID.
func (m *TeamSpaceMembership) params() Params {
	return Params{
		ParamSpaceID:               m.sys.Space.ID(),
		ParamTeamID:                m.sys.Team.ID(),
		ParamTeamSpaceMembershipID: m.sys.ID,
	}
}

// Update sends the current admin flag and roles to the server.
func (m *TeamSpaceMembership) Update(ctx context.Context) (*TeamSpaceMembership, error) {
	raw, err := m.makeRequest(ctx, Request{
		EntityType: EntityTeamSpaceMembership,
		Action:     ActionUpdate,
		Params:     m.params(),
		Payload:    m.ToPlainObject(),
	})

	return wrapResponse(m.makeRequest, raw, err, WrapTeamSpaceMembership, "updating team space membership")
}

// Delete removes the team from the space.
func (m *TeamSpaceMembership) Delete(ctx context.Context) error {
	_, err := m.makeRequest(ctx, Request{
		EntityType: EntityTeamSpaceMembership,
		Action:     ActionDelete,
		Params:     m.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting team space membership: %w", err)
	}

	return nil
}
