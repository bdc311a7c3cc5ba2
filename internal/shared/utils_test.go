package shared

import (
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUUID(t *testing.T) {
	a, b := NewID(), NewID()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Music", "music"},
		{"  Life Style  ", "life-style"},
		{"Rock & Roll!!", "rock-roll-"},
		{"a--b__c", "a-b__c"},
		{"Café au lait", "caf-au-lait"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
			assert.Equal(t, Slugify(tt.in), Slugify(tt.in))
		})
	}
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "music", CategorySlug("Music", ""))
	assert.Equal(t, "custom", CategorySlug("Music", "custom"))
	assert.Equal(t, "rock-roll", CategorySlug("Rock & Roll!!", ""))
	assert.Equal(t, "x", CategorySlug("ignored", "--x--"))
}

func TestCategorySlug_FallbackWhenEmpty(t *testing.T) {
	s := CategorySlug("!!!", "")
	require.NotEmpty(t, s)
	assert.False(t, strings.HasPrefix(s, "-"))
	assert.False(t, strings.HasSuffix(s, "-"))
	assert.NotEqual(t, s, CategorySlug("!!!", ""))
}

func TestUploadFilename_UniqueForSameSource(t *testing.T) {
	now := time.UnixMilli(1718000000000)

	a := UploadFilename("photo.jpg", now)
	b := UploadFilename("photo.jpg", now)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "1718000000000-"))
	assert.Equal(t, ".jpg", filepath.Ext(a))
}

func TestUploadFilename_NoExtension(t *testing.T) {
	name := UploadFilename("README", time.UnixMilli(1))
	_, err := uuid.Parse(strings.TrimPrefix(name, "1-"))
	require.NoError(t, err)
}

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)

	empty, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
