package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		input   credentials
		wantErr string
	}{
		{name: "valid", input: credentials{Email: "a@b.com", Password: "x"}},
		{name: "missing email", input: credentials{Password: "x"}, wantErr: "email is a required field"},
		{name: "bad email", input: credentials{Email: "nope", Password: "x"}, wantErr: "email must be a valid email address"},
		{name: "missing password", input: credentials{Email: "a@b.com"}, wantErr: "password is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
