package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yx043749/beaver-farm/internal/model"
)

type credentials struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStructValid(t *testing.T) {
	err := Struct(credentials{Username: "beaver", Password: "secret1"})
	assert.NoError(t, err)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(credentials{Username: "ab", Password: ""})
	require.Error(t, err)

	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be at least 3 characters", ve.Fields["username"])
	assert.Equal(t, "is required", ve.Fields["password"])
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestStructCountsRunesNotBytes(t *testing.T) {
	err := Struct(credentials{Username: "河狸农场", Password: "secret1"})
	assert.NoError(t, err)
}

func TestStructRejectsPathCharacters(t *testing.T) {
	for _, name := range []string{"../etc", "a/b/c", `win\dows`, ".."} {
		err := Struct(credentials{Username: name, Password: "secret1"})

		var ve *Error
		require.ErrorAs(t, err, &ve, name)
		assert.Contains(t, ve.Fields, "username", name)
	}
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("habitName", "Read", "required,max=50"))

	err := Var("habitName", "", "required,max=50")
	assert.EqualError(t, err, "habitName is required")
}

func TestErrorMessageIsSorted(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "is bad", "a": "is worse"}}
	assert.Equal(t, "a is worse; b is bad", err.Error())
}
