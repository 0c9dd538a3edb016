package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/models"
)

func TestAuthService_LoginSavesSession(t *testing.T) {
	api := &fakeAPI{Resp: `{"token":"jwt-1","user":{"id":3,"username":"ana","nome":"Ana","role":"admin"}}`}
	sess := &fakeSession{}
	svc := NewAuthService(api, sess)

	resp, err := svc.Login(context.Background(), "ana", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "jwt-1", resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)
	require.Len(t, api.Calls, 1)
	assert.Equal(t, "POST", api.Calls[0].Method)
	assert.Equal(t, "/user/login", api.Calls[0].Path)
	assert.Equal(t, models.LoginRequest{Username: "ana", Password: "s3cret"}, api.Calls[0].Body)

	assert.Equal(t, "jwt-1", sess.Token)
	ok, err := svc.LoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, sess.Saved)
	assert.Equal(t, int64(3), sess.Saved.ID)

	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
}

func TestAuthService_LoginErrorPropagatesUnchanged(t *testing.T) {
	apiErr := &httpx.APIError{Status: 401, Message: "Usuário ou senha inválidos", Method: "POST", Path: "/user/login"}
	api := &fakeAPI{Err: apiErr}
	sess := &fakeSession{}

	_, err := NewAuthService(api, sess).Login(context.Background(), "ana", "bad")
	assert.Same(t, apiErr, err)
	assert.Nil(t, sess.Saved)
}

func TestAuthService_LoginWithoutTokenIsDecodeError(t *testing.T) {
	api := &fakeAPI{Resp: `{"user":{"id":3,"username":"ana"}}`}
	sess := &fakeSession{}

	_, err := NewAuthService(api, sess).Login(context.Background(), "ana", "x")
	assert.ErrorIs(t, err, models.ErrDecode)
	assert.Nil(t, sess.Saved)
}

func TestAuthService_LoginSaveFailure(t *testing.T) {
	api := &fakeAPI{Resp: `{"token":"t","user":{"id":1,"username":"a"}}`}
	boom := errors.New("disk full")

	_, err := NewAuthService(api, &fakeSession{SaveErr: boom}).Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_Logout(t *testing.T) {
	api := &fakeAPI{}
	sess := &fakeSession{Token: "t", Saved: &models.User{ID: 1}}
	svc := NewAuthService(api, sess)

	require.NoError(t, svc.Logout(context.Background()))
	assert.True(t, sess.Cleared)
	assert.Empty(t, api.Calls)

	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)

	ok, err := svc.LoggedIn(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
