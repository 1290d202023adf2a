package scheduling

import (
	"testing"

	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopeMode(t *testing.T) {
	mode, err := ParseScopeMode("")
	require.NoError(t, err)
	assert.Equal(t, ScopeNone, mode)

	mode, err = ParseScopeMode("none")
	require.NoError(t, err)
	assert.Equal(t, ScopeNone, mode)

	mode, err = ParseScopeMode("class")
	require.NoError(t, err)
	assert.Equal(t, ScopeClass, mode)

	_, err = ParseScopeMode("lab")
	assert.Error(t, err)
}

func TestScopeKey(t *testing.T) {
	s := &models.Schedule{ClassName: "B"}
	assert.Equal(t, "", ScopeNone.Key(s))
	assert.Equal(t, "B", ScopeClass.Key(s))
}
