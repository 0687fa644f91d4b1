package api

import (
	"context"
	"net/http"

	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

// Login exchanges credentials for a bearer token and installs it on the
// session manager. It is the only call that goes out unauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := loginPayload{Email: email, Password: password}
	if err := validateOutbound(payload); err != nil {
		return err
	}

	var resp types.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, payload, &resp, true); err != nil {
		return err
	}
	if resp.Token == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "login response carried no token")
	}
	return c.session.Set(resp.Token)
}

// Logout drops the local session. The backend keeps no server-side session
// state for bearer tokens, so nothing goes over the wire.
func (c *Client) Logout() {
	c.session.Clear()
}
