package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// TeamFields are the mutable fields of a team.
type TeamFields struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TeamProps is the wire shape of a team.
type TeamProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	TeamFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p TeamProps) MarshalJSON() ([]byte, error) {
	type plain TeamProps

	return marshalWithExtra(plain(p), p.Extra)
}

// TeamAPI is the capability set of a team.
type TeamAPI interface {
	Sys() MetaSys
	ToPlainObject() TeamProps
	Update(ctx context.Context) (*Team, error)
	Delete(ctx context.Context) error
}

// Team is a group of organization members.
type Team struct {
	Identity
	TeamFields

	makeRequest MakeRequest
}

var _ TeamAPI = (*Team)(nil)

// WrapTeam wraps a raw team.
func WrapTeam(makeRequest MakeRequest, raw json.RawMessage) (*Team, error) {
	identity, fields, err := Decode[TeamFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping team: %w", err)
	}

	return &Team{Identity: identity, TeamFields: fields, makeRequest: makeRequest}, nil
}

// WrapTeamCollection wraps a raw collection of teams.
var WrapTeamCollection = WrapCollection(WrapTeam)

// ToPlainObject returns a deep copy of the team's wire view.
func (t *Team) ToPlainObject() TeamProps {
	return TeamProps{Sys: t.Sys(), Extra: t.extras(), TeamFields: clone(t.TeamFields)}
}

func (t *Team) params() Params {
	return Params{
		ParamOrganizationID: t.sys.Organization.ID(),
		ParamTeamID:         t.sys.ID,
	}
}

// Update sends the current name and description to the server.
func (t *Team) Update(ctx context.Context) (*Team, error) {
	raw, err := t.makeRequest(ctx, Request{
		EntityType: EntityTeam,
		Action:     ActionUpdate,
		Params:     t.params(),
		Payload:    t.ToPlainObject(),
	})

	return wrapResponse(t.makeRequest, raw, err, WrapTeam, "updating team")
}

// Delete deletes the team.
func (t *Team) Delete(ctx context.Context) error {
	_, err := t.makeRequest(ctx, Request{
		EntityType: EntityTeam,
		Action:     ActionDelete,
		Params:     t.params(),
	})
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	return nil
}
