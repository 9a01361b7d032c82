package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Years    float64 `json:"requiredYearsExperience" validate:"gte=0,lte=50"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(registerRequest{Email: "nope", Password: "short", Years: 51})
	var verr *Error
	require.True(t, errors.As(err, &verr))

	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Message()
	}
	assert.Equal(t, "name is required", got["name"])
	assert.Equal(t, "email must be a valid email", got["email"])
	assert.Equal(t, "password must be at least 8", got["password"])
	assert.Equal(t, "requiredYearsExperience must be <= 50", got["requiredYearsExperience"])
}

func TestStructAcceptsValid(t *testing.T) {
	assert.NoError(t, Struct(registerRequest{Name: "A", Email: "a@example.com", Password: "longenough", Years: 3}))
}
