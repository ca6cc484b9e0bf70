package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/autom8ter/instadb"
	"github.com/autom8ter/instadb/model"
	"github.com/autom8ter/instadb/transport"
	"github.com/brianvoe/gofakeit/v6"
)

// StubTransport is a transport collaborator stub: it records every outbound
// request and serves canned responses in order (the last response sticks).
type StubTransport struct {
	mu        sync.Mutex
	requests  []*transport.Request
	responses []*transport.Response
	err       error
}

// NewStubTransport returns a stub serving the given responses
func NewStubTransport(responses ...*transport.Response) *StubTransport {
	return &StubTransport{responses: responses}
}

// NewFailingTransport returns a stub whose every call fails with err
func NewFailingTransport(err error) *StubTransport {
	return &StubTransport{err: err}
}

func (s *StubTransport) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return OK(`{}`), nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

// Calls returns how many times the transport was invoked
func (s *StubTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the recorded requests in dispatch order
func (s *StubTransport) Requests() []*transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*transport.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// OK returns a 200 response with the given json body
func OK(body string) *transport.Response {
	return &transport.Response{Status: http.StatusOK, Body: []byte(body)}
}

// Status returns a response with the given status and json body
func Status(status int, body string) *transport.Response {
	return &transport.Response{Status: status, Body: []byte(body)}
}

// NewClient returns a client wired to a stub transport serving the given
// responses
func NewClient(responses ...*transport.Response) (*instadb.Client, *StubTransport) {
	stub := NewStubTransport(responses...)
	client, err := instadb.New(instadb.Config{
		AppID:      "app-1",
		AdminToken: "admin-tok",
		LogLevel:   "error",
		Transport:  stub,
	})
	if err != nil {
		panic(err)
	}
	return client, stub
}

// NewTodo returns a fake todo attribute mapping
func NewTodo() map[string]any {
	return map[string]any{
		"title":     gofakeit.LoremIpsumSentence(4),
		"done":      gofakeit.Bool(),
		"createdAt": gofakeit.Date().Format("2006-01-02T15:04:05Z"),
	}
}

// NewUser returns a fake admin API user
func NewUser() model.User {
	return model.User{
		ID:    gofakeit.UUID(),
		Email: gofakeit.Email(),
	}
}
