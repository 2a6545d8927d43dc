package cma

import (
	"context"
	"encoding/json"
	"strconv"
)

// Request describes a single API call in terms of the resource it targets.
// The transport turns it into an HTTP request; the wrapping layer never sees
// URLs, headers or status codes.
type Request struct {
	EntityType string
	Action     string
	Params     Params
	Query      *QueryParams
	Payload    any
	Headers    map[string]string
}

// MakeRequest issues a Request and returns the raw JSON response body. A
// failed call returns the transport's error unchanged.
type MakeRequest func(ctx context.Context, req Request) (json.RawMessage, error)

// Params holds the identifiers that scope a request.
type Params map[string]string

// Well-known parameter names.
const (
	ParamSpaceID               = "spaceId"
	ParamEnvironmentID         = "environmentId"
	ParamContentTypeID         = "contentTypeId"
	ParamEditorInterfaceID     = "editorInterfaceId"
	ParamEntryID               = "entryId"
	ParamLocaleID              = "localeId"
	ParamOrganizationID        = "organizationId"
	ParamUserID                = "userId"
	ParamAppDefinitionID       = "appDefinitionId"
	ParamTeamID                = "teamId"
	ParamTeamMembershipID      = "teamMembershipId"
	ParamTeamSpaceMembershipID = "teamSpaceMembershipId"
	ParamInvitationID          = "invitationId"
	ParamVersion               = "version"
)

// Entity types understood by the transport.
const (
	EntitySpace                  = "Space"
	EntityEnvironment            = "Environment"
	EntityContentType            = "ContentType"
	EntityEditorInterface        = "EditorInterface"
	EntityEntry                  = "Entry"
	EntityLocale                 = "Locale"
	EntityOrganization           = "Organization"
	EntityUser                   = "User"
	EntityAppDefinition          = "AppDefinition"
	EntityTeam                   = "Team"
	EntityTeamMembership         = "TeamMembership"
	EntityTeamSpaceMembership    = "TeamSpaceMembership"
	EntityOrganizationInvitation = "OrganizationInvitation"
)

// Actions understood by the transport.
const (
	ActionGet                    = "get"
	ActionGetMany                = "getMany"
	ActionGetAll                 = "getAll"
	ActionGetCurrent             = "getCurrent"
	ActionGetForOrganization     = "getForOrganization"
	ActionGetManyForOrganization = "getManyForOrganization"
	ActionGetManyForTeam         = "getManyForTeam"
	ActionCreate                 = "create"
	ActionCreateWithID           = "createWithId"
	ActionUpdate                 = "update"
	ActionDelete                 = "delete"
	ActionPublish                = "publish"
	ActionUnpublish              = "unpublish"
	ActionArchive                = "archive"
	ActionUnarchive              = "unarchive"
)

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}

	out[key] = value

	return out
}

// WithVersion returns a copy of p carrying an explicit entity version.
func (p Params) WithVersion(version int) Params {
	return p.With(ParamVersion, strconv.Itoa(version))
}
