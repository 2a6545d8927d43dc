// Package cmaclient provides the entry point for constructing a management
// API client that implements the cma.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// entity types defined in the cma package. Build a client here, then reach
// every other resource through the entities it returns.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/cma/pkg/cma"
//	  "github.com/fivetwenty-io/cma/pkg/cmaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := cmaclient.NewWithToken(ctx, "api.contentful.com", "CFPAT-...")
//	  if err != nil { log.Fatal(err) }
//
//	  space, err := cli.GetSpace(ctx, "spaceid")
//	  if err != nil { log.Fatal(err) }
//
//	  env, err := space.GetEnvironment(ctx, "master")
//	  if err != nil { log.Fatal(err) }
//
//	  ei, err := env.GetEditorInterfaceForContentType(ctx, "blogPost")
//	  if err != nil { log.Fatal(err) }
//
//	  if control := ei.GetControlForField("title"); control != nil {
//	    control.WidgetID = "singleLine"
//	    if _, err := ei.Update(ctx); err != nil { log.Fatal(err) }
//	  }
//	}
//
// Or with OAuth2 client credentials; the token URL defaults to
// <endpoint>/oauth/token:
//
//	cli, err := cmaclient.New(ctx, &cma.Config{
//	  APIEndpoint:  "https://api.contentful.com",
//	  ClientID:     "id",
//	  ClientSecret: "secret",
//	})
//
// Errors
//
// Failed calls return errors that wrap *cma.APIError; use cma.IsNotFound,
// cma.IsVersionMismatch and friends to classify them.
package cmaclient
