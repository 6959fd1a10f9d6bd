package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking/internal/shared/errors"
)

type cpfHolder struct {
	CPF   string `json:"cpf" validate:"required,cpf"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		input       cpfHolder
		wantErr     bool
		wantDetails string
	}{
		{name: "valid formatted cpf", input: cpfHolder{CPF: "111.444.777-35"}},
		{name: "valid raw cpf", input: cpfHolder{CPF: "52998224725", Email: "a@b.com"}},
		{name: "missing cpf", input: cpfHolder{}, wantErr: true, wantDetails: "cpf is required"},
		{name: "bad check digit", input: cpfHolder{CPF: "111.444.777-36"}, wantErr: true, wantDetails: "cpf must be a valid CPF"},
		{name: "repeated digits", input: cpfHolder{CPF: "111.111.111-11"}, wantErr: true, wantDetails: "cpf must be a valid CPF"},
		{name: "bad email uses json name", input: cpfHolder{CPF: "52998224725", Email: "nope"}, wantErr: true, wantDetails: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.wantDetails, appErr.Details)
		})
	}
}

func TestTranslateValidationError_NonValidatorError(t *testing.T) {
	err := TranslateValidationError(assert.AnError)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeBadRequest, appErr.Type)
}
