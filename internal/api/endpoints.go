package api

import (
	"context"
	"net/http"
)

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	return Issue[RegisterResponse](ctx, c, Request{
		Action: "register",
		Method: http.MethodPost,
		Path:   "/users/register",
		Body:   in,
		Schema: registerResponseSchema,
	})
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	return Issue[LoginResponse](ctx, c, Request{
		Action: "login",
		Method: http.MethodPost,
		Path:   "/users/login",
		Body:   in,
		Schema: loginResponseSchema,
	})
}

// FetchProfile returns the signed-in user's dashboard data.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	return Issue[Profile](ctx, c, Request{
		Action:       "profile",
		Method:       http.MethodGet,
		Path:         "/users/profile",
		RequiresAuth: true,
		Schema:       profileSchema,
	})
}

// SubmitTest sends the ordered answers and returns the scored result.
func (c *Client) SubmitTest(ctx context.Context, answers []int) (*TestResult, error) {
	return Issue[TestResult](ctx, c, Request{
		Action:       "submit_test",
		Method:       http.MethodPost,
		Path:         "/users/test",
		Body:         SubmitTestRequest{Respostas: answers},
		RequiresAuth: true,
		Schema:       testResultSchema,
	})
}
