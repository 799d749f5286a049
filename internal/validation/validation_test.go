package validation

import (
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	err := v.Struct(&sampleRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	assert.Nil(t, err)
}

func TestStruct_CollectsAllFieldErrors(t *testing.T) {
	v := New()
	err := v.Struct(&sampleRequest{})
	require.NotNil(t, err)
	assert.Equal(t, models.CodeInvalidInput, err.Code)
	assert.Len(t, err.Fields, 3)

	params := make([]string, 0, len(err.Fields))
	for _, fe := range err.Fields {
		params = append(params, fe.Param)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, params)
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(&sampleRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"})
	require.NotNil(t, err)
	require.Len(t, err.Fields, 1)
	assert.Equal(t, "email", err.Fields[0].Param)
	assert.Equal(t, "Please include a valid email", err.Fields[0].Msg)
}

func TestStruct_MinLength(t *testing.T) {
	v := New()
	err := v.Struct(&sampleRequest{Name: "Alice", Email: "alice@example.com", Password: "short"})
	require.NotNil(t, err)
	require.Len(t, err.Fields, 1)
	assert.Equal(t, "password", err.Fields[0].Param)
	assert.Contains(t, err.Fields[0].Msg, "at least 6")
}
