// Package monday pushes quote status changes to a Monday.com board.
package monday

import (
	"context"
	"fmt"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/cotizador/quoting-system/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	apiVersion     = "2024-01"
)

const changeStatusMutation = `mutation ($board: ID!, $item: ID!, $column: String!, $value: String!) {
  change_simple_column_value(board_id: $board, item_id: $item, column_id: $column, value: $value) { id }
}`

type Config struct {
	APIURL       string
	Token        string
	BoardID      string
	StatusColumn string
}

// Client implements ports.BoardClient over the Monday GraphQL API.
type Client struct {
	cfg Config
	gql *graphql.Client
}

func NewClient(cfg Config) *Client {
	gql := graphql.NewClient(cfg.APIURL, &http.Client{Timeout: defaultTimeout}).
		WithRequestModifier(func(r *http.Request) {
			r.Header.Set("Authorization", cfg.Token)
			r.Header.Set("API-Version", apiVersion)
		})
	return &Client{cfg: cfg, gql: gql}
}

var _ ports.BoardClient = (*Client)(nil)

type changeStatusResult struct {
	ChangeSimpleColumnValue struct {
		ID string `graphql:"id"`
	} `graphql:"change_simple_column_value"`
}

// PushStatus sets the status column of the quote's board item.
func (c *Client) PushStatus(ctx context.Context, update ports.BoardStatusUpdate) error {
	if update.BoardItemID == "" {
		return fmt.Errorf("monday: quote %s has no board item", update.QuoteID)
	}

	var out changeStatusResult
	err := c.gql.Exec(ctx, changeStatusMutation, &out, map[string]any{
		"board":  c.cfg.BoardID,
		"item":   update.BoardItemID,
		"column": c.cfg.StatusColumn,
		"value":  update.Status,
	})
	if err != nil {
		return fmt.Errorf("monday: change status of item %s: %w", update.BoardItemID, err)
	}
	// Older API versions report failures as a bare error_message with no data.
	if out.ChangeSimpleColumnValue.ID == "" {
		return fmt.Errorf("monday: item %s was not updated", update.BoardItemID)
	}
	return nil
}
