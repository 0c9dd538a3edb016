package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFailures_MapsWireFields(t *testing.T) {
	raw := []byte(`[
		{"id": 7, "tipo": "Elétrica", "descricao": "fuse blown", "dataCriacao": "2025-01-11T10:30:00Z", "status": "Em Andamento"},
		{"id": "a-1", "tipo": "Hidráulica", "descricao": "leak", "dataCriacao": "not a date"},
		{"id": 9, "tipo": "Software", "descricao": "crash", "dataCriacao": 1736591400000, "status": null}
	]`)

	got, err := DecodeFailures(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "7", got[0].ID)
	assert.Equal(t, CategoryElectrical, got[0].Category)
	assert.Equal(t, "fuse blown", got[0].Description)
	assert.Equal(t, time.Date(2025, 1, 11, 10, 30, 0, 0, time.UTC), got[0].CreatedAt.UTC())
	assert.Equal(t, StatusInProgress, got[0].Status)

	assert.Equal(t, "a-1", got[1].ID)
	assert.Equal(t, CategoryOther, got[1].Category, "unknown categories fall into Other")
	assert.True(t, got[1].CreatedAt.IsZero(), "unparseable timestamps become zero")
	assert.Equal(t, StatusPending, got[1].Status, "missing status defaults to Pending")

	assert.Equal(t, time.UnixMilli(1736591400000), got[2].CreatedAt)
}

func TestDecodeFailures_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"object instead of list", `{"id": 1}`},
		{"missing id", `[{"tipo": "Software", "descricao": "x"}]`},
		{"id of wrong type", `[{"id": {"x": 1}, "descricao": "x"}]`},
		{"unknown status", `[{"id": 1, "descricao": "x", "status": "Closed"}]`},
		{"duplicate id", `[{"id": "a", "descricao": "x"}, {"id": "b", "descricao": "y"}, {"id": "a", "descricao": "z"}]`},
		{"duplicate id across number and string", `[{"id": 7, "descricao": "x"}, {"id": "7", "descricao": "y"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFailures([]byte(tt.raw))
			require.ErrorIs(t, err, ErrDecode)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeFailures_DuplicateIDNamesBothPositions(t *testing.T) {
	_, err := DecodeFailures([]byte(`[{"id": 7, "descricao": "x"}, {"id": "7", "descricao": "y"}]`))
	require.ErrorIs(t, err, ErrDuplicateID)
	require.ErrorIs(t, err, ErrDecode)
	assert.ErrorContains(t, err, `failure list[1]`)
	assert.ErrorContains(t, err, `first at [0]`)
}

func TestDecodeFailure_EmptyBody(t *testing.T) {
	_, err := DecodeFailure(nil)
	require.ErrorIs(t, err, ErrDecode)
}

func TestParseTimestamp(t *testing.T) {
	local := func(y int, m time.Month, d, h, min, s int) time.Time {
		return time.Date(y, m, d, h, min, s, 0, time.Local)
	}
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{`"2025-01-11T10:30:00"`, local(2025, 1, 11, 10, 30, 0), true},
		{`"2025-01-11T10:30:00.250"`, local(2025, 1, 11, 10, 30, 0).Add(250 * time.Millisecond), true},
		{`"2025-01-11 08:00:00"`, local(2025, 1, 11, 8, 0, 0), true},
		{`"2025-01-11"`, local(2025, 1, 11, 0, 0, 0), true},
		{`0`, time.UnixMilli(0), true},
		{`"garbage"`, time.Time{}, false},
		{`null`, time.Time{}, false},
		{``, time.Time{}, false},
		{`true`, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseTimestamp(json.RawMessage(tt.raw))
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.True(t, tt.want.Equal(got), "%s: got %v want %v", tt.raw, got, tt.want)
	}
}

func TestDecodeLoginResponse(t *testing.T) {
	r, err := DecodeLoginResponse([]byte(`{"token":"abc","user":{"id":1,"username":"ana","email":"ana@example.org"}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", r.Token)
	assert.Equal(t, "ana", r.User.Username)

	_, err = DecodeLoginResponse([]byte(`{"user":{"id":1,"username":"ana"}}`))
	require.ErrorIs(t, err, ErrDecode, "token is required")

	_, err = DecodeLoginResponse([]byte(`{"token":"abc","user":{"id":1,"username":"ana","email":"nope"}}`))
	require.ErrorIs(t, err, ErrDecode, "email must be well formed")
}

func TestDecodeUsers(t *testing.T) {
	us, err := DecodeUsers([]byte(`[{"id":1,"username":"a"},{"id":2,"username":"b","active":true}]`))
	require.NoError(t, err)
	require.Len(t, us, 2)
	assert.True(t, us[1].Active)

	_, err = DecodeUsers([]byte(`[{"id":1,"username":"a"},{"username":"b"}]`))
	require.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "user list[1]")

	_, err = DecodeUser([]byte(`[]`))
	require.ErrorIs(t, err, ErrDecode)
}
