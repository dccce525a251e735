/*
Package adminsdk provides a client SDK for the realm admin API.

# Overview

The SDK is organised around two types:

  - SDKClient: unauthenticated operations (health, JWKS, token grant)
  - Session: authenticated operations with automatic re-authentication

Create an SDKClient and authenticate with client credentials:

	client := adminsdk.NewSDKClient("https://admin.example.com")

	session, err := client.AuthenticateWithClientCredentials(ctx, clientID, secret,
		[]string{"roles:read", "roles:write"})

Role operations are scoped to a realm:

	roles := session.Roles("master")

	page, err := roles.Find(ctx, adminsdk.FindParams{First: adminsdk.Int(0), Max: adminsdk.Int(11)})

	err = roles.DelByID(ctx, page.Roles[0].ID)

# Token lifetime

Client credentials grants carry no refresh token. A Session keeps the client
secret and requests a fresh access token 30 seconds before the current one
expires.

# Errors

Every non-success response is returned as *APIError. Its Error string has the
form "{code}: {description}" and is suitable for showing to an operator:

	var apiErr *adminsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// role already gone
	}

# Scope checking

When SDKClient.CheckScopes is true (the default) a Session refuses calls for
which it was not granted the required scope, before any request is sent.
*/
package adminsdk
