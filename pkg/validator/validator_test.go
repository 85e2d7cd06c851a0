package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name  string `validate:"required"`
	Count int    `validate:"gte=0"`
	Note  string `validate:"max=10"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(testPayload{Name: "x", Count: 1})

	assert.NoError(t, err)
}

func TestValidate_RequiredMissing(t *testing.T) {
	err := Validate(testPayload{Count: 1})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_MultipleFailures(t *testing.T) {
	err := Validate(testPayload{Count: -1, Note: "12345678901"})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields["Count"], "greater than or equal to 0")
	assert.Contains(t, fields["Note"], "at most 10")
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(testPayload{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}

func TestDecodeAndValidate_OK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"Name":"x","Count":2}`))

	var dst testPayload
	err := DecodeAndValidate(req, &dst)

	require.NoError(t, err)
	assert.Equal(t, "x", dst.Name)
	assert.Equal(t, 2, dst.Count)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{bad`))

	var dst testPayload
	err := DecodeAndValidate(req, &dst)

	assert.Error(t, err)
}
