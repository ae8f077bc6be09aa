package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/models"
)

// Tables validates and forwards table management operations.
type Tables struct {
	client cluster.Client
}

// NewTables creates a table gateway around the given client.
func NewTables(client cluster.Client) *Tables {
	return &Tables{client: client}
}

// List returns all tables known to the cluster.
func (g *Tables) List(ctx context.Context) ([]models.Table, error) {
	tables, err := g.client.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// Create creates a table and returns its assigned id. A taken name surfaces
// cluster.ErrAlreadyExists.
func (g *Tables) Create(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", validationf("Table name is required")
	}

	table, err := g.client.CreateTable(ctx, name)
	if err != nil {
		return "", fmt.Errorf("create table %q: %w", name, err)
	}
	return table.ID, nil
}

// Delete removes a table by name. Deleting an absent table is a success.
func (g *Tables) Delete(ctx context.Context, name string) error {
	if name == "" {
		return validationf("Table name is required")
	}

	err := g.client.DeleteTable(ctx, name)
	if err != nil && !errors.Is(err, cluster.ErrNotFound) {
		return fmt.Errorf("delete table %q: %w", name, err)
	}
	return nil
}
