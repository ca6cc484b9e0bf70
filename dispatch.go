package instadb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/model"
	"github.com/autom8ter/instadb/transport"
	"github.com/segmentio/ksuid"
)

// Kind identifies an admin API operation and keys its route
type Kind string

const (
	KindQuery           Kind = "query"
	KindTransact        Kind = "transact"
	KindDebugQuery      Kind = "debug_query"
	KindDebugTransact   Kind = "debug_transact"
	KindAuthCreateToken Kind = "auth_create_token"
	KindAuthVerifyToken Kind = "auth_verify_token"
	KindAuthGetUser     Kind = "auth_get_user"
	KindAuthDeleteUser  Kind = "auth_delete_user"
	KindAuthSignOut     Kind = "auth_sign_out"
	KindStorageUpload   Kind = "storage_upload"
	KindStorageDelete   Kind = "storage_delete"
	KindStorageList     Kind = "storage_list"
)

type route struct {
	method string
	path   string
	dryRun bool
}

// routes is the single place a deployment can remap the admin surface
var routes = map[Kind]route{
	KindQuery:           {method: http.MethodPost, path: "/admin/query"},
	KindTransact:        {method: http.MethodPost, path: "/admin/transact"},
	KindDebugQuery:      {method: http.MethodPost, path: "/admin/debug/query", dryRun: true},
	KindDebugTransact:   {method: http.MethodPost, path: "/admin/debug/transact", dryRun: true},
	KindAuthCreateToken: {method: http.MethodPost, path: "/admin/refresh_tokens"},
	KindAuthVerifyToken: {method: http.MethodPost, path: "/admin/refresh_tokens/verify"},
	KindAuthGetUser:     {method: http.MethodGet, path: "/admin/users"},
	KindAuthDeleteUser:  {method: http.MethodDelete, path: "/admin/users"},
	KindAuthSignOut:     {method: http.MethodPost, path: "/admin/sign_out"},
	KindStorageUpload:   {method: http.MethodPost, path: "/admin/storage/upload"},
	KindStorageDelete:   {method: http.MethodDelete, path: "/admin/storage/files"},
	KindStorageList:     {method: http.MethodGet, path: "/admin/storage/files"},
}

// request is one fully-described dispatch before credential decoration
type request struct {
	kind    Kind
	payload any
	params  map[string]string
	headers map[string]string
	stream  io.Reader
}

// dispatch validates the payload locally, decorates it with the client's auth
// context, hands it to the transport, and classifies any failure. Every failed
// dispatch yields exactly one classified error - raw transport errors never
// escape.
func (c *Client) dispatch(ctx context.Context, req request) (*Document, error) {
	rt, ok := routes[req.kind]
	if !ok {
		return nil, errors.New(errors.Validation, "dispatch: unknown kind: %s", req.kind)
	}
	body, err := c.encodePayload(req)
	if err != nil {
		return nil, err
	}
	headers := map[string]string{}
	for k, v := range req.headers {
		headers[k] = v
	}
	if body != nil {
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/json"
		}
	}
	// auth-derived headers are reserved and always win
	for k, v := range c.auth.Headers() {
		headers[k] = v
	}
	if rt.dryRun {
		headers[HeaderDryRun] = "true"
	}
	requestID := ksuid.New().String()
	headers[HeaderRequestID] = requestID
	tags := map[string]any{
		"kind":      string(req.kind),
		"path":      rt.path,
		"requestId": requestID,
	}
	c.logger.Debug(ctx, "dispatching admin request", tags)

	start := time.Now()
	resp, err := c.transport.Do(ctx, &transport.Request{
		Method:  rt.method,
		Path:    rt.path,
		Params:  req.params,
		Headers: headers,
		Body:    body,
		Stream:  req.stream,
	})
	tags["duration"] = time.Since(start).String()
	if err != nil {
		kind := errors.TransientServer
		if transport.IsPermanent(err) {
			kind = errors.Unknown
		}
		err = errors.Wrap(err, kind, "dispatch: transport failure for %s", req.kind)
		c.logger.Error(ctx, "admin request failed", err, tags)
		return nil, err
	}
	tags["status"] = resp.Status
	if resp.Status < 200 || resp.Status > 299 {
		err := errors.Classify(resp.Status, resp.Body)
		c.logger.Error(ctx, "admin request rejected", err, tags)
		return nil, err
	}
	c.logger.Debug(ctx, "admin request ok", tags)
	if len(resp.Body) == 0 {
		return NewDocument(), nil
	}
	return NewDocumentFromBytes(resp.Body)
}

// encodePayload shapes and locally validates the wire body for the known kinds.
// Validation failures short-circuit before any network activity.
func (c *Client) encodePayload(req request) ([]byte, error) {
	switch req.kind {
	case KindQuery, KindDebugQuery:
		q, ok := req.payload.(model.Query)
		if !ok {
			return nil, errors.New(errors.Validation, "dispatch: %s payload must be a query expression", req.kind)
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{"query": q})
	case KindTransact, KindDebugTransact:
		steps, ok := req.payload.([]model.Step)
		if !ok {
			return nil, errors.New(errors.Validation, "dispatch: %s payload must be a step sequence", req.kind)
		}
		if len(steps) == 0 {
			return nil, errors.New(errors.Validation, "dispatch: empty transaction")
		}
		for _, step := range steps {
			if err := step.Validate(); err != nil {
				return nil, err
			}
		}
		return json.Marshal(map[string]any{"steps": model.EncodeSteps(steps)})
	default:
		if req.payload == nil {
			return nil, nil
		}
		bits, err := json.Marshal(req.payload)
		if err != nil {
			return nil, errors.New(errors.Validation, "dispatch: %s payload is not json serializable", req.kind)
		}
		return bits, nil
	}
}
