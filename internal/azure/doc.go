// Package azure provides bearer tokens for the Microsoft Graph API using the
// OAuth2 client-credential grant against Azure AD.
//
// Configuration comes from the AZURE_TENANT_ID, AZURE_CLIENT_ID and
// AZURE_CLIENT_SECRET environment variables. Tokens are fetched on demand and
// cached inside the oauth2 token source.
package azure
