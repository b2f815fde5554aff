package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Status          string `json:"status" validate:"omitempty,todostatus"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetailsUsesJSONNamesAndAliases(t *testing.T) {
	err := newValidator().Struct(signup{Email: "nope", Password: "short", PasswordConfirm: "other", Status: "pending"})

	details := ToDetails(err)
	assert.Equal(t, map[string]string{
		"email":           "must be a valid email",
		"password":        "must be at least 8 characters and at most 72 bytes long",
		"passwordConfirm": "must be equal to password",
		"status":          "must be one of: active, done",
	}, details)
}

func TestToDetailsRequired(t *testing.T) {
	err := newValidator().Struct(signup{})
	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestToDetailsJSONErrors(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte("{bad"), &dst)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("EOF")))
	assert.Nil(t, ToDetails(nil))
}

func TestPasswordLengthCountsBytes(t *testing.T) {
	v := newValidator()
	type pw struct {
		Password string `json:"password" validate:"pwd"`
	}
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"ascii minimum", "abcdefgh", true},
		{"ascii maximum", strings.Repeat("a", 72), true},
		{"ascii too long", strings.Repeat("a", 73), false},
		{"short", "abc", false},
		{"multibyte within 72 bytes", strings.Repeat("é", 36), true},
		{"multibyte over 72 bytes", strings.Repeat("é", 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(pw{Password: tt.value})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, "must be at least 8 characters and at most 72 bytes long", ToDetails(err)["password"])
		})
	}
}
