package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressHeader(t *testing.T) {
	base := context.Background()
	assert.False(t, shouldSuppressHeader(base))

	ctx := WithSuppressHeader(base)
	assert.True(t, shouldSuppressHeader(ctx))
	assert.False(t, shouldSuppressHeader(base), "parent context must be unchanged")

	wrongType := context.WithValue(base, suppressHeaderKey, "yes")
	assert.False(t, shouldSuppressHeader(wrongType))
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			assert.True(t, shouldSuppressHeader(ctx))
		})
	}
	wg.Wait()
}
