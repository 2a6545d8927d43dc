// Package auth supplies bearer tokens for the management API: static
// personal access tokens, OAuth2 client_credentials tokens, and a variant
// that persists newly issued tokens to the CLI configuration.
package auth
