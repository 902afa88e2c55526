package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeResourceType(t *testing.T) {
	assert.Equal(t, ResourceWebSearch, NormalizeResourceType("webSearch"))
	assert.Equal(t, ResourceWebSearch, NormalizeResourceType("websearch"))
	assert.Equal(t, ResourceVideo, NormalizeResourceType("video"))
}

func TestResourceTypeValid(t *testing.T) {
	valid := []string{"assessment", "content", "image", "comic", "slide", "video", "websearch"}
	for _, v := range valid {
		assert.True(t, ResourceType(v).Valid(), v)
	}

	assert.False(t, ResourceType("podcast").Valid())
	assert.False(t, ResourceType("webSearch").Valid()) // 先过 Normalize 再校验
	assert.False(t, ResourceType("").Valid())
}

func TestProgressIsCompleted(t *testing.T) {
	p := &Progress{Status: StatusInProgress}
	assert.False(t, p.IsCompleted())
	p.Status = StatusCompleted
	assert.True(t, p.IsCompleted())
}
