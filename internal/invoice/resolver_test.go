package invoice

import (
	"testing"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestResolveVendor_FirstMatchWins(t *testing.T) {
	registry := []models.VendorRef{
		{ID: 1, Name: "TechMart"},
		{ID: 2, Name: "TechMart Solutions"},
	}

	id, name := ResolveVendor(strPtr("TechMart"), registry)

	require.NotNil(t, id)
	assert.Equal(t, int64(1), *id, "ties break by registry order, not by best match")
	require.NotNil(t, name)
	assert.Equal(t, "TechMart", *name)
}

func TestResolveVendor_CaseInsensitiveContainment(t *testing.T) {
	registry := []models.VendorRef{
		{ID: 5, Name: "GreenLeaf Construction"},
	}

	id, name := ResolveVendor(strPtr("greenleaf"), registry)

	require.NotNil(t, id)
	assert.Equal(t, int64(5), *id)
	assert.Equal(t, "GreenLeaf Construction", *name, "resolution returns the canonical registry name")
}

func TestResolveVendor_NoMatchPreservesLiteralText(t *testing.T) {
	registry := []models.VendorRef{
		{ID: 1, Name: "TechMart"},
	}

	id, name := ResolveVendor(strPtr("Acme Corp"), registry)

	assert.Nil(t, id)
	require.NotNil(t, name)
	assert.Equal(t, "Acme Corp", *name)
}

func TestResolveVendor_AbsentName(t *testing.T) {
	registry := []models.VendorRef{
		{ID: 1, Name: "TechMart"},
	}

	id, name := ResolveVendor(nil, registry)

	assert.Nil(t, id)
	assert.Nil(t, name)
}

func TestResolveVendor_EmptyRegistry(t *testing.T) {
	id, name := ResolveVendor(strPtr("TechMart"), nil)

	assert.Nil(t, id)
	require.NotNil(t, name)
	assert.Equal(t, "TechMart", *name)
}
