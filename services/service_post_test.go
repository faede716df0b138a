package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRejectsBadCursor(t *testing.T) {
	svc := NewPostService(nil, nil)

	// Cursor decoding fails before any store access.
	_, err := svc.List(context.Background(), "", "not a cursor!!", 10)
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
