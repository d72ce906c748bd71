package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorMatching(t *testing.T) {
	t.Parallel()

	// Entity-specific errors must match their generic family with errors.Is
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrAdNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrRequestNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
	assert.ErrorIs(t, ErrDuplicateRequest, ErrDuplicate)

	// And must keep matching after additional wrapping
	wrapped := fmt.Errorf("creating user: %w", ErrEmailExists)
	assert.ErrorIs(t, wrapped, ErrEmailExists)
	assert.ErrorIs(t, wrapped, ErrDuplicate)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrAdNotFound)))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("something else")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicateRequest)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := NewStoreError("user", "create", "insert failed", inner)

	assert.Contains(t, err.Error(), "create operation on user failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, inner)

	// Without a wrapped error the message stands alone
	bare := NewStoreError("ad", "list", "scan failed", nil)
	assert.Equal(t, "list operation on ad failed: scan failed", bare.Error())
}
