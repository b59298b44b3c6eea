package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-discovery/internal/pkg/common"
)

func TestReplaceResultsWithoutRedis(t *testing.T) {
	store := NewStore(nil, 0)

	_, err := store.ReplaceResults(context.Background(), "user-1", []common.Recipe{{Title: "A"}})
	assert.True(t, errors.Is(err, common.ErrStorage))
}

func TestReplaceResultsEmptyUserID(t *testing.T) {
	store := NewStore(nil, 0)

	_, err := store.ReplaceResults(context.Background(), "", nil)
	assert.True(t, errors.Is(err, common.ErrStorage))
}

func TestGetResultsWithoutRedis(t *testing.T) {
	store := NewStore(nil, 0)

	_, err := store.GetResults(context.Background(), "user-1")
	assert.True(t, errors.Is(err, common.ErrStorage))
}
