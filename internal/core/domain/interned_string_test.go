package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("compile")
	b := domain.NewInternedString("compile")

	assert.Equal(t, a, b)
	assert.Equal(t, "compile", a.String())
	assert.False(t, a.IsZero())
}

func TestInternedString_Zero(t *testing.T) {
	var is domain.InternedString

	assert.True(t, is.IsZero())
	assert.Empty(t, is.String())
}

func TestInternedString_JSON(t *testing.T) {
	type wrapper struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(wrapper{Name: domain.NewInternedString("unit-tests")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"unit-tests"}`, string(data))

	var got wrapper
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "unit-tests", got.Name.String())
}
