package inventory

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShelf(t *testing.T) {
	companyID := uuid.New()
	creatorID := uuid.New()

	s, err := NewShelf(companyID, creatorID, "  Стеллаж А  ")
	require.NoError(t, err)

	assert.Equal(t, "Стеллаж А", s.Name)
	assert.Equal(t, companyID, s.CompanyID)
	require.NotNil(t, s.CreatedBy)
	assert.Equal(t, creatorID, *s.CreatedBy)
}

func TestNewShelfValidation(t *testing.T) {
	_, err := NewShelf(uuid.New(), uuid.New(), "   ")
	require.Error(t, err)

	_, err = NewShelf(uuid.New(), uuid.New(), strings.Repeat("x", 201))
	require.Error(t, err)
}

func TestShelfRename(t *testing.T) {
	s, err := NewShelf(uuid.New(), uuid.New(), "Стеллаж А")
	require.NoError(t, err)
	version := s.Version

	require.NoError(t, s.Rename("Стеллаж Б"))
	assert.Equal(t, "Стеллаж Б", s.Name)
	assert.Equal(t, version+1, s.Version)

	require.Error(t, s.Rename(""))
	assert.Equal(t, "Стеллаж Б", s.Name)
}
