// Package zoom provides a client for the Zoom REST API (api.zoom.us/v2).
//
// Authentication uses Zoom's server-to-server OAuth flow: an access token is
// obtained from the token endpoint with the account_credentials grant and
// refreshed transparently through an oauth2 token source.
//
// The client implements report.Source, converting Zoom wire payloads into the
// report package's provider-neutral types at this boundary.
package zoom
