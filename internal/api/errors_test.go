package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{cause, KindUnknown},
		{&ErrInvalidURL{URL: "x", Err: cause}, KindInvalidURL},
		{&ErrTokenNotFound{}, KindTokenNotFound},
		{&ErrEncoding{Err: cause}, KindEncoding},
		{&ErrRequestFailed{Err: cause}, KindRequestFailed},
		{&ErrInvalidResponse{StatusCode: 500}, KindInvalidResponse},
		{&ErrDecoding{Err: cause}, KindDecoding},
		{&ValidationError{Message: "x"}, KindValidation},
		{fmt.Errorf("wrapped: %w", &ErrInvalidResponse{StatusCode: 401}), KindInvalidResponse},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "KindOf(%v)", tt.err)
	}
}

func TestCausesAreUnwrappable(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("login: %w", &ErrRequestFailed{Err: cause})
	assert.ErrorIs(t, err, cause)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgConnectivity, UserMessage(&ErrInvalidResponse{StatusCode: 503}))
	assert.Equal(t, MsgGeneric, UserMessage(&ErrRequestFailed{Err: errors.New("x")}))
	assert.Equal(t, MsgGeneric, UserMessage(&ErrDecoding{Err: errors.New("x")}))
	assert.Equal(t, MsgGeneric, UserMessage(&ErrTokenNotFound{}))
	assert.Equal(t, MsgGeneric, UserMessage(errors.New("anything")))
	assert.Equal(t, "Email e senha são obrigatórios.",
		UserMessage(&ValidationError{Message: "Email e senha são obrigatórios."}))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.BaseURL = "localhost:3001"
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Timeout = 0
	assert.Error(t, bad.Validate())
}
