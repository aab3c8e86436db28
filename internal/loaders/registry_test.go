package loaders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

func TestDefault(t *testing.T) {
	registry := Default()
	require.NotNil(t, registry)

	types := registry.SupportedTypes()
	assert.Contains(t, types, domain.FileTypePDF)
	assert.Contains(t, types, domain.FileTypeWord)
	assert.Contains(t, types, domain.FileTypePlaintext)
}

func TestRegistry_ForType(t *testing.T) {
	registry := Default()

	for _, fileType := range []domain.FileType{domain.FileTypePDF, domain.FileTypeWord, domain.FileTypePlaintext} {
		loader, err := registry.ForType(fileType)
		require.NoError(t, err)
		assert.Contains(t, loader.SupportedTypes(), fileType)
	}
}

func TestRegistry_UnsupportedType(t *testing.T) {
	registry := Default()

	loader, err := registry.ForType(domain.FileType("xlsx"))
	require.Error(t, err)
	assert.Nil(t, loader)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestRegistry_SupportedTypesSorted(t *testing.T) {
	registry := Default()
	types := registry.SupportedTypes()

	require.Len(t, types, 3)
	for i := 1; i < len(types); i++ {
		assert.LessOrEqual(t, types[i-1], types[i])
	}
}
