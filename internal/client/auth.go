package client

import (
	"context"
	"net/http"

	"github.com/example/cashew-corner/internal/model"
)

const (
	LoginPath  = "/auth/login"
	LogoutPath = "/auth/logout"
)

func (c *Client) Auth() *AuthClient { return &AuthClient{c: c} }

type AuthClient struct {
	c *Client
}

func (r *AuthClient) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	return call[model.LoginResponse](ctx, r.c, http.MethodPost, LoginPath, nil, req)
}

// Logout invalidates the server-side session. The authorizer skips this path,
// so the caller passes the Authorization header value explicitly.
func (r *AuthClient) Logout(ctx context.Context, authorization string) error {
	_, err := r.c.sendWithHeader(ctx, http.MethodPost, LogoutPath, "Authorization", authorization, struct{}{})
	return err
}
