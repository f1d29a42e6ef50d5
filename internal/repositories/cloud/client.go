// Package cloud implements the DataStore over the hosted backend's
// PostgREST-compatible REST API.
package cloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"golang.org/x/oauth2"
)

// Client talks to the REST endpoint on behalf of one caller. The bearer is
// the caller's access token, or the API key for anonymous access.
type Client struct {
	rest *postgrest.Client
}

// NewClient builds a client for projectURL (the project root, without the
// /rest/v1 suffix). The bearer credential is attached by an oauth2 transport
// under the PostgREST client; ctx may carry a custom *http.Client for it.
func NewClient(ctx context.Context, projectURL, apiKey, bearerToken string) (*Client, error) {
	restURL := strings.TrimRight(projectURL, "/") + "/rest/v1"
	rest, err := postgrest.NewClientWithError(restURL, "public", nil)
	if err != nil {
		return nil, fmt.Errorf("cloud client for %q: %w", projectURL, err)
	}

	token := bearerToken
	if token == "" {
		token = apiKey
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	rest.Transport.Parent = oauth2.NewClient(ctx, src).Transport
	rest.SetApiKey(apiKey)

	return &Client{rest: rest}, nil
}

// from starts a query on table.
func (c *Client) from(table string) *postgrest.QueryBuilder {
	return c.rest.From(table)
}

// insert writes body into table without reading the rows back.
func (c *Client) insert(ctx context.Context, table string, body any) error {
	_, _, err := c.from(table).Insert(body, false, "", "minimal", "").ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

var newestFirst = &postgrest.OrderOpts{Ascending: false}
