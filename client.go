package instadb

import (
	"context"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/model"
	"github.com/autom8ter/instadb/transport"
	"github.com/autom8ter/instadb/util"
	"github.com/google/uuid"
)

// DefaultBaseURL is the production admin API endpoint
const DefaultBaseURL = "https://api.instadb.dev"

// Config configures a Client
type Config struct {
	// AppID is the application the client administers (required)
	AppID string `json:"appId" validate:"required"`
	// AdminToken is the app's admin credential (required)
	AdminToken string `json:"adminToken" validate:"required"`
	// BaseURL overrides the admin API endpoint
	BaseURL string `json:"baseUrl"`
	// LogLevel sets the default logger's level (debug|info|warn|error)
	LogLevel string `json:"logLevel"`
	// Logger overrides the default zap logger
	Logger Logger `json:"-"`
	// Transport overrides the default http transport
	Transport transport.Transport `json:"-"`
}

// Client talks to the admin HTTP API. A client is safe for concurrent use:
// its auth context is immutable and dispatches share no mutable state.
type Client struct {
	auth      AuthContext
	transport transport.Transport
	logger    Logger
}

// New returns a client for the given app. Deriving impersonated clients via
// AsUser never mutates the base client.
func New(config Config) (*Client, error) {
	if err := util.ValidateStruct(&config); err != nil {
		return nil, err
	}
	auth, err := NewAuthContext(config.AppID, config.AdminToken)
	if err != nil {
		return nil, err
	}
	tr := config.Transport
	if tr == nil {
		baseURL := config.BaseURL
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		tr, err = transport.NewHTTP(baseURL)
		if err != nil {
			return nil, errors.Wrap(err, errors.Validation, "invalid base url")
		}
	}
	logger := config.Logger
	if logger == nil {
		logger, err = NewLogger(config.LogLevel, map[string]any{"appId": config.AppID})
		if err != nil {
			return nil, err
		}
	}
	return &Client{
		auth:      auth,
		transport: tr,
		logger:    logger,
	}, nil
}

// NewID returns a client-generated entity id
func NewID() string {
	return uuid.NewString()
}

// Auth returns the client's auth context
func (c *Client) Auth() AuthContext {
	return c.auth
}

// AsUser derives a client whose requests carry the given identity on top of
// the admin credential. The receiver is untouched and both clients share the
// same transport and logger.
func (c *Client) AsUser(imp Impersonation) *Client {
	derived := *c
	derived.auth = c.auth.WithImpersonation(imp)
	return &derived
}

// AsEmail derives a client impersonating the user with the given email
func (c *Client) AsEmail(email string) (*Client, error) {
	imp, err := ImpersonateEmail(email)
	if err != nil {
		return nil, err
	}
	return c.AsUser(imp), nil
}

// AsToken derives a client impersonating the user holding the given refresh token
func (c *Client) AsToken(token string) (*Client, error) {
	imp, err := ImpersonateToken(token)
	if err != nil {
		return nil, err
	}
	return c.AsUser(imp), nil
}

// AsGuest derives a client impersonating an unauthenticated guest
func (c *Client) AsGuest() *Client {
	return c.AsUser(ImpersonateGuest())
}

// Query executes an InstaQL query expression and returns the result document
func (c *Client) Query(ctx context.Context, q model.Query) (*Document, error) {
	return c.dispatch(ctx, request{kind: KindQuery, payload: q})
}

// DebugQuery executes the query as a dry-run. The result document additionally
// carries the server's permission-rule evaluation traces, passed through
// unmodified.
func (c *Client) DebugQuery(ctx context.Context, q model.Query) (*Document, error) {
	return c.dispatch(ctx, request{kind: KindDebugQuery, payload: q})
}

// TxResult reports a committed transaction
type TxResult struct {
	TxID string `json:"tx-id"`
}

// Transact applies the ordered step sequence atomically as one unit
func (c *Client) Transact(ctx context.Context, steps ...model.Step) (*TxResult, error) {
	doc, err := c.dispatch(ctx, request{kind: KindTransact, payload: steps})
	if err != nil {
		return nil, err
	}
	var result TxResult
	if err := util.Decode(doc.Value(), &result); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "transact: unexpected response shape")
	}
	return &result, nil
}

// DebugTransact evaluates the step sequence as a dry-run, returning the
// server's rule-evaluation traces without committing effects
func (c *Client) DebugTransact(ctx context.Context, steps ...model.Step) (*Document, error) {
	return c.dispatch(ctx, request{kind: KindDebugTransact, payload: steps})
}
