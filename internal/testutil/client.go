package testutil

import (
	"context"

	"gorm.io/gorm"
)

// TestClient implements postgres.IClient for service tests that run over the
// in-memory stores. WithTx just runs the function: the stores are not
// transactional, and the services under test only rely on WithTx for write
// grouping.
type TestClient struct{}

// NewTestClient creates a new test client
func NewTestClient() *TestClient {
	return &TestClient{}
}

func (c *TestClient) Querier(ctx context.Context) *gorm.DB {
	return nil
}

func (c *TestClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
