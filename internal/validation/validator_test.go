package validation

import (
	"strings"
	"testing"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string          `json:"email" validate:"required,basic_email"`
	Password string          `json:"password" validate:"required,password"`
	Location entity.Location `json:"location" validate:"location"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewWithMinPasswordLength(6)

	tests := []struct {
		name        string
		form        signupForm
		wantDetails []string
	}{
		{
			name: "valid text location",
			form: signupForm{Email: "A@B.com", Password: "secret1", Location: entity.TextLocation("Lagos")},
		},
		{
			name: "valid point location",
			form: signupForm{Email: "a@b.com", Password: "secret1", Location: entity.PointLocation(6.5, 3.3)},
		},
		{
			name:        "missing fields",
			form:        signupForm{},
			wantDetails: []string{"email is required", "password is required", "location must be"},
		},
		{
			name:        "malformed email",
			form:        signupForm{Email: "not-an-email", Password: "secret1", Location: entity.TextLocation("Lagos")},
			wantDetails: []string{"email must be a valid email address"},
		},
		{
			name:        "email without tld",
			form:        signupForm{Email: "a@b", Password: "secret1", Location: entity.TextLocation("Lagos")},
			wantDetails: []string{"email must be a valid email address"},
		},
		{
			name:        "short password",
			form:        signupForm{Email: "a@b.com", Password: "abc", Location: entity.TextLocation("Lagos")},
			wantDetails: []string{"password must be at least 6 characters long"},
		},
		{
			name:        "password over bcrypt limit",
			form:        signupForm{Email: "a@b.com", Password: strings.Repeat("p", 80), Location: entity.TextLocation("Lagos")},
			wantDetails: []string{"password must be at most 72 bytes long"},
		},
		{
			name: "password at bcrypt limit",
			form: signupForm{Email: "a@b.com", Password: strings.Repeat("p", MaxPasswordBytes), Location: entity.TextLocation("Lagos")},
		},
		{
			name:        "multibyte password over bcrypt limit",
			form:        signupForm{Email: "a@b.com", Password: strings.Repeat("é", 40), Location: entity.TextLocation("Lagos")},
			wantDetails: []string{"password must be at most 72 bytes long"},
		},
		{
			name:        "blank location",
			form:        signupForm{Email: "a@b.com", Password: "secret1", Location: entity.TextLocation("  ")},
			wantDetails: []string{"location must be a non-empty string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if len(tt.wantDetails) == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			for _, detail := range tt.wantDetails {
				assert.Contains(t, appErr.Details(), detail)
			}
		})
	}
}

func TestNew_UsesConfiguredPasswordPolicy(t *testing.T) {
	v := New(&config.Config{PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 10}})

	err := v.Struct(signupForm{Email: "a@b.com", Password: "secret1", Location: entity.TextLocation("Lagos")})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "at least 10 characters")

	assert.Equal(t, DefaultMinPasswordLength, New(nil).minPasswordLength)
}
