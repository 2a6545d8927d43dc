package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// TeamMembershipFields are the mutable fields of a team membership.
type TeamMembershipFields struct {
	Admin                    bool   `json:"admin"                              yaml:"admin"`
	OrganizationMembershipID string `json:"organizationMembershipId,omitempty" yaml:"organizationMembershipId,omitempty"`
}

// TeamMembershipProps is the wire shape of a team membership.
type TeamMembershipProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	TeamMembershipFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p TeamMembershipProps) MarshalJSON() ([]byte, error) {
	type plain TeamMembershipProps

	return marshalWithExtra(plain(p), p.Extra)
}

// TeamMembershipAPI is the capability set of a team membership.
type TeamMembershipAPI interface {
	Sys() MetaSys
	ToPlainObject() TeamMembershipProps
	Update(ctx context.Context) (*TeamMembership, error)
	Delete(ctx context.Context) error
}

// TeamMembership puts an organization member into a team.
type TeamMembership struct {
	Identity
	TeamMembershipFields

	makeRequest MakeRequest
}

var _ TeamMembershipAPI = (*TeamMembership)(nil)

// WrapTeamMembership wraps a raw team membership.
func WrapTeamMembership(makeRequest MakeRequest, raw json.RawMessage) (*TeamMembership, error) {
	identity, fields, err := Decode[TeamMembershipFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping team membership: %w", err)
	}

	return &TeamMembership{Identity: identity, TeamMembershipFields: fields, makeRequest: makeRequest}, nil
}

// WrapTeamMembershipCollection wraps a raw collection of team memberships.
var WrapTeamMembershipCollection = WrapCollection(WrapTeamMembership)

// ToPlainObject returns a deep copy of the membership's wire view.
func (m *TeamMembership) ToPlainObject() TeamMembershipProps {
	return TeamMembershipProps{Sys: m.Sys(), Extra: m.extras(), TeamMembershipFields: clone(m.TeamMembershipFields)}
}

func (m *TeamMembership) params() Params {
	return Params{
		ParamOrganizationID:   m.sys.Organization.ID(),
		ParamTeamID:           m.sys.Team.ID(),
		ParamTeamMembershipID: m.sys.ID,
	}
}

// Update sends the current admin flag to the server.
func (m *TeamMembership) Update(ctx context.Context) (*TeamMembership, error) {
	raw, err := m.makeRequest(ctx, Request{
		EntityType: EntityTeamMembership,
		Action:     ActionUpdate,
		Params:     m.params(),
		Payload:    m.ToPlainObject(),
	})

	return wrapResponse(m.makeRequest, raw, err, WrapTeamMembership, "updating team membership")
}

// Delete removes the member from the team.
func (m *TeamMembership) Delete(ctx context.Context) error {
	_, err := m.makeRequest(ctx, Request{
		EntityType: EntityTeamMembership,
		Action:     ActionDelete,
		Params:     m.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting team membership: %w", err)
	}

	return nil
}
