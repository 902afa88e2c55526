package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDBaseBeforeCreate_GeneratesID(t *testing.T) {
	b := &UUIDBase{}
	require.NoError(t, b.BeforeCreate(nil))

	_, err := uuid.Parse(b.ID)
	assert.NoError(t, err)
}

func TestUUIDBaseBeforeCreate_KeepsExplicitID(t *testing.T) {
	b := &UUIDBase{ID: "user-1"}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, "user-1", b.ID)
}
