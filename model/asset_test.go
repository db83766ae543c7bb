package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeTable_DecodePreservesOrder(t *testing.T) {
	data := []byte(`{
		"thumbnail": {"width": 150, "height": 150, "crop": ["top"]},
		"hero": {"width": 758, "height": 460},
		"thumbnail-alt": {"width": 150, "height": 150, "crop": ["bottom", "left"]}
	}`)

	var table SizeTable
	require.NoError(t, json.Unmarshal(data, &table))
	require.Len(t, table, 3)

	assert.Equal(t, "thumbnail", table[0].Name)
	assert.Equal(t, "hero", table[1].Name)
	assert.Equal(t, "thumbnail-alt", table[2].Name)
	assert.Equal(t, 150, table[0].Width)
	assert.Equal(t, []string{"top"}, table[0].Crop)
	assert.Nil(t, table[1].Crop)
}

func TestSizeTable_DecodeRejectsNonObject(t *testing.T) {
	var table SizeTable
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &table))
}

func TestAccessRule_SatisfyAllDefaultsFalse(t *testing.T) {
	var rule AccessRule
	require.NoError(t, json.Unmarshal([]byte(`{"users": ["user1"]}`), &rule))
	assert.False(t, rule.SatisfyAll)
}

func TestSiteProtectionIndex_DefaultGroup(t *testing.T) {
	index := SiteProtectionIndex{
		{SiteKey: "www.example.edu", Group: "rootgroup"},
		{SiteKey: "www.example.edu/somesite", Group: "sitegroup"},
	}

	assert.Equal(t, "rootgroup", index.DefaultGroup("www.example.edu"))
	assert.Equal(t, "sitegroup", index.DefaultGroup("www.example.edu/somesite"))
	assert.Equal(t, "", index.DefaultGroup("www.example.edu/other"))
}

func TestRequestContext_HasIdentity(t *testing.T) {
	assert.False(t, RequestContext{}.HasIdentity())
	assert.True(t, RequestContext{Eppn: "   @example.edu"}.HasIdentity(),
		"identity evidence is present even when the principal is unusable")
}
