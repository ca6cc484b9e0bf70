package instadb

import (
	"context"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/model"
	"github.com/autom8ter/instadb/util"
)

// CreateToken signs in (or provisions) the user with the given email and
// returns their refresh token
func (c *Client) CreateToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New(errors.Validation, "users: empty email")
	}
	doc, err := c.dispatch(ctx, request{
		kind:    KindAuthCreateToken,
		payload: map[string]any{"email": email},
	})
	if err != nil {
		return "", err
	}
	token := doc.GetString("user.refresh_token")
	if token == "" {
		return "", errors.New(errors.Unknown, "users: response missing refresh token")
	}
	return token, nil
}

// VerifyToken checks a user refresh token and returns the user it belongs to
func (c *Client) VerifyToken(ctx context.Context, refreshToken string) (*model.User, error) {
	if refreshToken == "" {
		return nil, errors.New(errors.Validation, "users: empty refresh token")
	}
	doc, err := c.dispatch(ctx, request{
		kind:    KindAuthVerifyToken,
		payload: map[string]any{"refresh_token": refreshToken},
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(doc)
}

// GetUser fetches a user by exactly one of email, id, or refresh token
func (c *Client) GetUser(ctx context.Context, lookup model.UserLookup) (*model.User, error) {
	if err := lookup.Validate(); err != nil {
		return nil, err
	}
	doc, err := c.dispatch(ctx, request{
		kind:   KindAuthGetUser,
		params: lookup.Params(),
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(doc)
}

// DeleteUser removes a user account and its associated data
func (c *Client) DeleteUser(ctx context.Context, lookup model.UserLookup) error {
	if err := lookup.Validate(); err != nil {
		return err
	}
	_, err := c.dispatch(ctx, request{
		kind:   KindAuthDeleteUser,
		params: lookup.Params(),
	})
	return err
}

// SignOut invalidates every refresh token issued to the user with the given email
func (c *Client) SignOut(ctx context.Context, email string) error {
	if email == "" {
		return errors.New(errors.Validation, "users: empty email")
	}
	_, err := c.dispatch(ctx, request{
		kind:    KindAuthSignOut,
		payload: map[string]any{"email": email},
	})
	return err
}

func decodeUser(doc *Document) (*model.User, error) {
	payload := doc.Get("user")
	if payload == nil {
		payload = doc.Value()
	}
	var user model.User
	if err := util.Decode(payload, &user); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "users: unexpected response shape")
	}
	if user.ID == "" && user.Email == "" {
		return nil, errors.New(errors.Unknown, "users: response missing user")
	}
	return &user, nil
}
