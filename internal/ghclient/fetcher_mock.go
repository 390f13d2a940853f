package ghclient

import (
	"context"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of ActivityFetcher for testing.
type MockFetcher struct {
	mock.Mock
}

var _ contract.ActivityFetcher = &MockFetcher{} // Compile-time check

// FetchSnapshot implements the ActivityFetcher interface.
func (m *MockFetcher) FetchSnapshot(ctx context.Context, username string) (*schema.ActivitySnapshot, error) {
	args := m.Called(ctx, username)
	snap, _ := args.Get(0).(*schema.ActivitySnapshot)
	return snap, args.Error(1)
}
