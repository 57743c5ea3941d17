package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"max=10"`
}

func TestToDetails_FieldErrorsUseJSONNames(t *testing.T) {
	Init(5)

	err := binding.Validator.ValidateStruct(&signup{Email: "nope", Password: "abc", Name: "a very long name"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "enter a valid email address", details["email"])
	assert.Equal(t, "ensure this field has at least 5 characters", details["password"])
	assert.Equal(t, "ensure this field has no more than 10 characters", details["name"])
}

func TestToDetails_Required(t *testing.T) {
	Init(5)

	err := binding.Validator.ValidateStruct(&signup{})
	details := ToDetails(err)

	assert.Equal(t, "this field may not be blank", details["email"])
	assert.Equal(t, "this field may not be blank", details["password"])
}

func TestToDetails_PasswordAtMinimumPasses(t *testing.T) {
	Init(5)

	err := binding.Validator.ValidateStruct(&signup{Email: "a@example.com", Password: "12345"})
	assert.NoError(t, err)
}

func TestToDetails_PayloadErrors(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "empty body"}, ToDetails(io.EOF))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))

	var v map[string]any
	synErr := json.Unmarshal([]byte("{bad"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(synErr))

	var s struct {
		Name string `json:"name"`
	}
	typeErr := json.Unmarshal([]byte(`{"name": 5}`), &s)
	assert.Equal(t, map[string]string{"name": "must be a string"}, ToDetails(typeErr))
}

type pwdOnly struct {
	Password string `json:"password" binding:"pwd"`
}

func TestInit_PasswordMinimumNeverBelowFive(t *testing.T) {
	Init(1)

	err := binding.Validator.ValidateStruct(&pwdOnly{Password: "abcd"})
	require.Error(t, err)
	assert.Equal(t, "ensure this field has at least 5 characters", ToDetails(err)["password"])

	assert.NoError(t, binding.Validator.ValidateStruct(&pwdOnly{Password: "abcde"}))
}
