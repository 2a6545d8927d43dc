package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
)

// route maps one entity action onto an HTTP endpoint. Path segments written
// as {name} are filled from request params; paramHeaders copies params into
// headers.
type route struct {
	method       string
	path         string
	versioned    bool
	paramHeaders map[string]string
	headers      map[string]string
}

// Endpoint is a resolved route.
type Endpoint struct {
	Method    string
	Path      string
	Headers   map[string]string
	Versioned bool
}

const (
	spacePath       = "/spaces/{spaceId}"
	environmentPath = spacePath + "/environments/{environmentId}"
	contentTypePath = environmentPath + "/content_types/{contentTypeId}"
	entryPath       = environmentPath + "/entries/{entryId}"
	localePath      = environmentPath + "/locales/{localeId}"
	orgPath         = "/organizations/{organizationId}"
	teamPath        = orgPath + "/teams/{teamId}"
)

func crud(collection, item string) map[string]route {
	return map[string]route{
		cma.ActionGet:     {method: http.MethodGet, path: item},
		cma.ActionGetMany: {method: http.MethodGet, path: collection},
		cma.ActionCreate:  {method: http.MethodPost, path: collection},
		cma.ActionUpdate:  {method: http.MethodPut, path: item, versioned: true},
		cma.ActionDelete:  {method: http.MethodDelete, path: item},
	}
}

func publishable(collection, item string) map[string]route {
	routes := crud(collection, item)
	routes[cma.ActionCreateWithID] = route{method: http.MethodPut, path: item}
	routes[cma.ActionPublish] = route{method: http.MethodPut, path: item + "/published", versioned: true}
	routes[cma.ActionUnpublish] = route{method: http.MethodDelete, path: item + "/published"}

	return routes
}

var routes = buildRoutes()

//nolint:funlen // one table of every endpoint
func buildRoutes() map[string]map[string]route {
	spaces := crud("/spaces", spacePath)
	spaces[cma.ActionCreate] = route{
		method:       http.MethodPost,
		path:         "/spaces",
		paramHeaders: map[string]string{cma.ParamOrganizationID: constants.HeaderOrganization},
	}

	environments := crud(spacePath+"/environments", environmentPath)
	environments[cma.ActionCreateWithID] = route{method: http.MethodPut, path: environmentPath}

	contentTypeHeader := map[string]string{cma.ParamContentTypeID: constants.HeaderContentType}

	entries := publishable(environmentPath+"/entries", entryPath)
	entries[cma.ActionCreate] = route{
		method:       http.MethodPost,
		path:         environmentPath + "/entries",
		paramHeaders: contentTypeHeader,
	}
	entries[cma.ActionCreateWithID] = route{
		method:       http.MethodPut,
		path:         entryPath,
		paramHeaders: contentTypeHeader,
	}
	entries[cma.ActionArchive] = route{method: http.MethodPut, path: entryPath + "/archived", versioned: true}
	entries[cma.ActionUnarchive] = route{method: http.MethodDelete, path: entryPath + "/archived"}

	teamHeader := map[string]string{cma.ParamTeamID: constants.HeaderTeam}

	invitationHeaders := map[string]string{constants.HeaderAlphaFeature: constants.AlphaPendingOrgMembership}

	return map[string]map[string]route{
		cma.EntitySpace:       spaces,
		cma.EntityEnvironment: environments,
		cma.EntityContentType: publishable(environmentPath+"/content_types", contentTypePath),
		cma.EntityEditorInterface: {
			cma.ActionGet:     {method: http.MethodGet, path: contentTypePath + "/editor_interface"},
			cma.ActionGetMany: {method: http.MethodGet, path: environmentPath + "/editor_interfaces"},
			cma.ActionUpdate:  {method: http.MethodPut, path: contentTypePath + "/editor_interface", versioned: true},
		},
		cma.EntityEntry:  entries,
		cma.EntityLocale: crud(environmentPath+"/locales", localePath),
		cma.EntityOrganization: {
			cma.ActionGetAll: {method: http.MethodGet, path: "/organizations"},
		},
		cma.EntityUser: {
			cma.ActionGetCurrent:             {method: http.MethodGet, path: "/users/me"},
			cma.ActionGetForOrganization:     {method: http.MethodGet, path: orgPath + "/users/{userId}"},
			cma.ActionGetManyForOrganization: {method: http.MethodGet, path: orgPath + "/users"},
		},
		cma.EntityAppDefinition: crud(orgPath+"/app_definitions", orgPath+"/app_definitions/{appDefinitionId}"),
		cma.EntityTeam:          crud(orgPath+"/teams", teamPath),
		cma.EntityTeamMembership: {
			cma.ActionGet:                    {method: http.MethodGet, path: teamPath + "/team_memberships/{teamMembershipId}"},
			cma.ActionGetManyForOrganization: {method: http.MethodGet, path: orgPath + "/team_memberships"},
			cma.ActionGetManyForTeam:         {method: http.MethodGet, path: teamPath + "/team_memberships"},
			cma.ActionCreate:                 {method: http.MethodPost, path: teamPath + "/team_memberships"},
			cma.ActionUpdate: {
				method:    http.MethodPut,
				path:      teamPath + "/team_memberships/{teamMembershipId}",
				versioned: true,
			},
			cma.ActionDelete: {method: http.MethodDelete, path: teamPath + "/team_memberships/{teamMembershipId}"},
		},
		cma.EntityTeamSpaceMembership: {
			cma.ActionGet: {
				method: http.MethodGet,
				path:   orgPath + "/team_space_memberships/{teamSpaceMembershipId}",
			},
			cma.ActionGetManyForOrganization: {method: http.MethodGet, path: orgPath + "/team_space_memberships"},
			cma.ActionCreate: {
				method:       http.MethodPost,
				path:         spacePath + "/team_space_memberships",
				paramHeaders: teamHeader,
			},
			cma.ActionUpdate: {
				method:       http.MethodPut,
				path:         spacePath + "/team_space_memberships/{teamSpaceMembershipId}",
				versioned:    true,
				paramHeaders: teamHeader,
			},
			cma.ActionDelete: {
				method: http.MethodDelete,
				path:   spacePath + "/team_space_memberships/{teamSpaceMembershipId}",
			},
		},
		cma.EntityOrganizationInvitation: {
			cma.ActionGet: {
				method:  http.MethodGet,
				path:    orgPath + "/invitations/{invitationId}",
				headers: invitationHeaders,
			},
			cma.ActionCreate: {
				method:  http.MethodPost,
				path:    orgPath + "/invitations",
				headers: invitationHeaders,
			},
		},
	}
}

var placeholder = regexp.MustCompile(`\{([A-Za-z]+)\}`)

// Resolve maps an entity action and its params onto an endpoint. Every
// placeholder of the route's path must have a non-empty param.
func Resolve(entityType, action string, params cma.Params) (*Endpoint, error) {
	r, ok := routes[entityType][action]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", cma.ErrUnknownEndpoint, entityType, action)
	}

	var missing string

	path := placeholder.ReplaceAllStringFunc(r.path, func(segment string) string {
		name := segment[1 : len(segment)-1]

		value := params[name]
		if value == "" && missing == "" {
			missing = name
		}

		return url.PathEscape(value)
	})

	if missing != "" {
		return nil, fmt.Errorf("%w: %s for %s.%s", cma.ErrMissingParam, missing, entityType, action)
	}

	headers := make(map[string]string, len(r.headers)+len(r.paramHeaders))
	for key, value := range r.headers {
		headers[key] = value
	}

	for param, header := range r.paramHeaders {
		value := params[param]
		if value == "" {
			return nil, fmt.Errorf("%w: %s for %s.%s", cma.ErrMissingParam, param, entityType, action)
		}

		headers[header] = value
	}

	return &Endpoint{
		Method:    r.method,
		Path:      path,
		Headers:   headers,
		Versioned: r.versioned,
	}, nil
}
