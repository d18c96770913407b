package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// signInForm is validated before a login attempt.
type signInForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// signUpForm is validated before a registration attempt. Email and
// password are sent as entered.
type signUpForm struct {
	FullName string `validate:"required"`
	Age      string `validate:"required,integer"`
}

// newValidator panics if a custom tag cannot be registered; that is a
// programming error, not bad input.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("integer", isInteger); err != nil {
		panic(fmt.Sprintf("auth: register integer validation: %v", err))
	}
	return v
}

// isInteger accepts strings that parse as a base-10 int.
func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil
}
