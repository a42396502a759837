package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/decantiq/decantiq-backend/pkg/config"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// Client wraps the shared Firestore connection.
type Client struct {
	raw       *fs.Client
	projectID string
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New boots a Firestore client using the provided configuration. When no
// credentials are configured, Application Default Credentials are used.
func New(ctx context.Context, cfg config.FirestoreConfig, logg *logger.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	raw, err := fs.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "project_id", cfg.ProjectID), "firestore connection established")
	}

	return &Client{raw: raw, projectID: cfg.ProjectID}, nil
}

// Raw returns the underlying Firestore client.
func (c *Client) Raw() *fs.Client {
	return c.raw
}

// Ping verifies the datastore is reachable. Firestore has no ping API, so a
// lightweight collection listing is attempted instead.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return fmt.Errorf("firestore client not initialized")
	}
	if _, err := c.raw.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// Close shuts down the underlying client.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
