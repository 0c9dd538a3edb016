package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/marmota/failboard/internal/client/models"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeAPI records every call and answers with Resp (raw JSON) or Err.
type fakeAPI struct {
	Calls []call
	Resp  string
	Err   error
}

func (f *fakeAPI) do(method, path string, query url.Values, body, out any) error {
	f.Calls = append(f.Calls, call{Method: method, Path: path, Query: query, Body: body})
	if f.Err != nil {
		return f.Err
	}
	if out == nil || f.Resp == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.Resp), out)
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.do("GET", path, query, nil, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.do("POST", path, nil, body, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, body, out any) error {
	return f.do("PUT", path, nil, body, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string, out any) error {
	return f.do("DELETE", path, nil, nil, out)
}

type fakeSession struct {
	Token   string
	Saved   *models.User
	Cleared bool
	SaveErr error
}

func (f *fakeSession) Save(_ context.Context, token string, user models.User) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Token = token
	f.Saved = &user
	return nil
}

func (f *fakeSession) Clear(context.Context) error {
	f.Cleared = true
	f.Token = ""
	f.Saved = nil
	return nil
}

func (f *fakeSession) User(context.Context) (*models.User, error) {
	return f.Saved, nil
}

func (f *fakeSession) LoggedIn(context.Context) (bool, error) {
	return f.Token != "", nil
}
