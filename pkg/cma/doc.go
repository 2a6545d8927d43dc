// Package cma provides typed entities for a content management REST API.
//
// # Overview
//
// Every resource (Space, Environment, ContentType, EditorInterface, Entry,
// Locale, Organization, Team, TeamMembership, TeamSpaceMembership,
// AppDefinition, OrganizationInvitation, User) is a concrete type embedding
// Identity, the frozen sys block, and a mutable XFields struct holding the
// wire fields. Entities are built from raw JSON by the WrapX functions and
// carry the MakeRequest callable their methods use to talk to the API.
//
// A concrete transport is provided by the cmaclient package, which wires
// configuration, authentication and HTTP. Most consumers construct a client
// there and reach everything else through the returned entities:
//
//	cli, err := cmaclient.New(&cma.Config{
//	  APIEndpoint: "https://api.contentful.com",
//	  AccessToken: os.Getenv("CMA_TOKEN"),
//	})
//	if err != nil { log.Fatal(err) }
//
//	space, err := cli.GetSpace(ctx, "sp1")
//	env, err := space.GetEnvironment(ctx, "master")
//	ei, err := env.GetEditorInterfaceForContentType(ctx, "blogPost")
//
//	if control := ei.GetControlForField("title"); control != nil {
//	  control.WidgetID = "singleLine"
//	}
//
//	ei, err = ei.Update(ctx)
//
// # Wrapping
//
// A wrapped entity never aliases the raw response it was built from, and its
// Sys method returns a copy, so identity and version cannot be changed from
// the outside. ToPlainObject returns a deep copy of the wire view; feeding it
// back through Raw and WrapX yields an equal entity. Request-issuing methods
// never modify their receiver: they return a freshly wrapped entity built
// from the server response.
//
// # Collections and pagination
//
// List operations return *Collection[T] with the API's total, skip, limit and
// items. WrapCollection derives a collection wrapper from any single-entity
// wrapper. PageIterator and FetchAll walk every page of a list:
//
//	teams, err := cma.FetchAll(ctx, org.GetTeams, cma.NewQueryParams().WithLimit(100))
//
// # Errors
//
// Transport failures come back wrapped with the operation that failed.
// Non-2xx responses are *APIError values; IsNotFound, IsVersionMismatch,
// IsRateLimited, IsAccessDenied and IsValidationFailed branch on the common
// cases.
package cma
