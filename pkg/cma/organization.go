package cma

import (
	"context"
	"encoding/json"
	"fmt"
)

// OrganizationFields are the fields of an organization.
type OrganizationFields struct {
	Name string `json:"name" yaml:"name"`
}

// OrganizationProps is the wire shape of an organization.
type OrganizationProps struct {
	Sys   MetaSys `json:"sys" yaml:"sys"`
	Extra Extra   `json:"-"   yaml:"-"`

	OrganizationFields `yaml:",inline"`
}

// MarshalJSON encodes the props together with their Extra keys.
func (p OrganizationProps) MarshalJSON() ([]byte, error) {
	type plain OrganizationProps

	return marshalWithExtra(plain(p), p.Extra)
}

// TeamMembershipOptions narrows GetTeamMemberships. With an empty TeamID the
// memberships of every team in the organization are listed.
type TeamMembershipOptions struct {
	TeamID string
	Query  *QueryParams
}

// TeamSpaceMembershipOptions narrows GetTeamSpaceMemberships. A non-empty
// TeamID filters on sys.team.sys.id.
type TeamSpaceMembershipOptions struct {
	TeamID string
	Query  *QueryParams
}

// OrganizationAPI is the capability set of an organization.
type OrganizationAPI interface {
	Sys() MetaSys
	ToPlainObject() OrganizationProps
	CreateAppDefinition(ctx context.Context, fields AppDefinitionFields) (*AppDefinition, error)
	GetAppDefinition(ctx context.Context, appDefinitionID string) (*AppDefinition, error)
	GetAppDefinitions(ctx context.Context, query *QueryParams) (*Collection[*AppDefinition], error)
	GetUser(ctx context.Context, userID string) (*User, error)
	GetUsers(ctx context.Context, query *QueryParams) (*Collection[*User], error)
	CreateTeam(ctx context.Context, fields TeamFields) (*Team, error)
	GetTeam(ctx context.Context, teamID string) (*Team, error)
	GetTeams(ctx context.Context, query *QueryParams) (*Collection[*Team], error)
	CreateTeamMembership(ctx context.Context, teamID string, fields TeamMembershipFields) (*TeamMembership, error)
	GetTeamMembership(ctx context.Context, teamID, teamMembershipID string) (*TeamMembership, error)
	GetTeamMemberships(ctx context.Context, opts TeamMembershipOptions) (*Collection[*TeamMembership], error)
	GetTeamSpaceMembership(ctx context.Context, teamSpaceMembershipID string) (*TeamSpaceMembership, error)
	GetTeamSpaceMemberships(ctx context.Context, opts TeamSpaceMembershipOptions) (*Collection[*TeamSpaceMembership], error)
	GetOrganizationInvitation(ctx context.Context, invitationID string) (*OrganizationInvitation, error)
	CreateOrganizationInvitation(ctx context.Context, fields OrganizationInvitationFields) (*OrganizationInvitation, error)
}

// Organization owns spaces, teams, app definitions and user memberships.
type Organization struct {
	Identity
	OrganizationFields

	makeRequest MakeRequest
}

var _ OrganizationAPI = (*Organization)(nil)

// WrapOrganization wraps a raw organization.
func WrapOrganization(makeRequest MakeRequest, raw json.RawMessage) (*Organization, error) {
	identity, fields, err := Decode[OrganizationFields](raw)
	if err != nil {
		return nil, fmt.Errorf("wrapping organization: %w", err)
	}

	return &Organization{Identity: identity, OrganizationFields: fields, makeRequest: makeRequest}, nil
}

// WrapOrganizationCollection wraps a raw collection of organizations.
var WrapOrganizationCollection = WrapCollection(WrapOrganization)

// ToPlainObject returns a deep copy of the organization's wire view.
func (o *Organization) ToPlainObject() OrganizationProps {
	return OrganizationProps{Sys: o.Sys(), Extra: o.extras(), OrganizationFields: clone(o.OrganizationFields)}
}

func (o *Organization) params() Params {
	return Params{ParamOrganizationID: o.sys.ID}
}

// CreateAppDefinition creates an app definition owned by the organization.
func (o *Organization) CreateAppDefinition(ctx context.Context, fields AppDefinitionFields) (*AppDefinition, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityAppDefinition,
		Action:     ActionCreate,
		Params:     o.params(),
		Payload:    fields,
	})

	return wrapResponse(o.makeRequest, raw, err, WrapAppDefinition, "creating app definition")
}

// GetAppDefinition fetches an app definition.
func (o *Organization) GetAppDefinition(ctx context.Context, appDefinitionID string) (*AppDefinition, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityAppDefinition,
		Action:     ActionGet,
		Params:     o.params().With(ParamAppDefinitionID, appDefinitionID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapAppDefinition, "getting app definition")
}

// GetAppDefinitions lists app definitions.
func (o *Organization) GetAppDefinitions(ctx context.Context, query *QueryParams) (*Collection[*AppDefinition], error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityAppDefinition,
		Action:     ActionGetMany,
		Params:     o.params(),
		Query:      query,
	})

	return wrapCollectionResponse(o.makeRequest, raw, err, WrapAppDefinitionCollection, "listing app definitions")
}

// GetUser fetches a member of the organization.
func (o *Organization) GetUser(ctx context.Context, userID string) (*User, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityUser,
		Action:     ActionGetForOrganization,
		Params:     o.params().With(ParamUserID, userID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapUser, "getting user")
}

// GetUsers lists the members of the organization.
func (o *Organization) GetUsers(ctx context.Context, query *QueryParams) (*Collection[*User], error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityUser,
		Action:     ActionGetManyForOrganization,
		Params:     o.params(),
		Query:      query,
	})

	return wrapCollectionResponse(o.makeRequest, raw, err, WrapUserCollection, "listing users")
}

// CreateTeam creates a team.
func (o *Organization) CreateTeam(ctx context.Context, fields TeamFields) (*Team, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeam,
		Action:     ActionCreate,
		Params:     o.params(),
		Payload:    fields,
	})

	return wrapResponse(o.makeRequest, raw, err, WrapTeam, "creating team")
}

// GetTeam fetches a team.
func (o *Organization) GetTeam(ctx context.Context, teamID string) (*Team, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeam,
		Action:     ActionGet,
		Params:     o.params().With(ParamTeamID, teamID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapTeam, "getting team")
}

// GetTeams lists teams.
func (o *Organization) GetTeams(ctx context.Context, query *QueryParams) (*Collection[*Team], error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeam,
		Action:     ActionGetMany,
		Params:     o.params(),
		Query:      query,
	})

	return wrapCollectionResponse(o.makeRequest, raw, err, WrapTeamCollection, "listing teams")
}

// CreateTeamMembership adds an organization member to a team.
func (o *Organization) CreateTeamMembership(ctx context.Context, teamID string, fields TeamMembershipFields) (*TeamMembership, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeamMembership,
		Action:     ActionCreate,
		Params:     o.params().With(ParamTeamID, teamID),
		Payload:    fields,
	})

	return wrapResponse(o.makeRequest, raw, err, WrapTeamMembership, "creating team membership")
}

// GetTeamMembership fetches a membership of a team.
func (o *Organization) GetTeamMembership(ctx context.Context, teamID, teamMembershipID string) (*TeamMembership, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeamMembership,
		Action:     ActionGet,
		Params: o.params().
			With(ParamTeamID, teamID).
			With(ParamTeamMembershipID, teamMembershipID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapTeamMembership, "getting team membership")
}

// GetTeamMemberships lists the memberships of one team, or of all teams when
// opts.TeamID is empty.
func (o *Organization) GetTeamMemberships(ctx context.Context, opts TeamMembershipOptions) (*Collection[*TeamMembership], error) {
	req := Request{
		EntityType: EntityTeamMembership,
		Action:     ActionGetManyForOrganization,
		Params:     o.params(),
		Query:      opts.Query,
	}

	if opts.TeamID != "" {
		req.Action = ActionGetManyForTeam
		req.Params = req.Params.With(ParamTeamID, opts.TeamID)
	}

	raw, err := o.makeRequest(ctx, req)

	return wrapCollectionResponse(o.makeRequest, raw, err, WrapTeamMembershipCollection, "listing team memberships")
}

// GetTeamSpaceMembership fetches a team space membership.
func (o *Organization) GetTeamSpaceMembership(ctx context.Context, teamSpaceMembershipID string) (*TeamSpaceMembership, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeamSpaceMembership,
		Action:     ActionGet,
		Params:     o.params().With(ParamTeamSpaceMembershipID, teamSpaceMembershipID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapTeamSpaceMembership, "getting team space membership")
}

// GetTeamSpaceMemberships lists team space memberships across the
// organization, optionally for one team.
func (o *Organization) GetTeamSpaceMemberships(ctx context.Context, opts TeamSpaceMembershipOptions) (*Collection[*TeamSpaceMembership], error) {
	query := opts.Query

	if opts.TeamID != "" {
		query = opts.Query.Clone().WithFilter("sys.team.sys.id", opts.TeamID)
	}

	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityTeamSpaceMembership,
		Action:     ActionGetManyForOrganization,
		Params:     o.params(),
		Query:      query,
	})

	return wrapCollectionResponse(o.makeRequest, raw, err, WrapTeamSpaceMembershipCollection, "listing team space memberships")
}

// GetOrganizationInvitation fetches an invitation.
func (o *Organization) GetOrganizationInvitation(ctx context.Context, invitationID string) (*OrganizationInvitation, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityOrganizationInvitation,
		Action:     ActionGet,
		Params:     o.params().With(ParamInvitationID, invitationID),
	})

	return wrapResponse(o.makeRequest, raw, err, WrapOrganizationInvitation, "getting organization invitation")
}

// CreateOrganizationInvitation invites someone to the organization.
func (o *Organization) CreateOrganizationInvitation(ctx context.Context, fields OrganizationInvitationFields) (*OrganizationInvitation, error) {
	raw, err := o.makeRequest(ctx, Request{
		EntityType: EntityOrganizationInvitation,
		Action:     ActionCreate,
		Params:     o.params(),
		Payload:    fields,
	})

	return wrapResponse(o.makeRequest, raw, err, WrapOrganizationInvitation, "creating organization invitation")
}
