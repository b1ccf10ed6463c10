package bloodapi

import (
	"context"
	"net/http"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks admin credentials against the backing service. Success is a
// 2xx status; 404 means no user with that email, 403 means wrong password or
// not an admin. The response body is never inspected for success.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.doText(ctx, http.MethodPost, "/admin/login", nil, loginPayload{Email: email, Password: password})
	return err
}
