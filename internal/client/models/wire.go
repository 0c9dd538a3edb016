package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// wireID accepts an identifier sent either as a JSON string or a number.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

type failurePayload struct {
	ID          wireID          `json:"id" validate:"required"`
	Category    string          `json:"tipo"`
	Description string          `json:"descricao"`
	CreatedAt   json.RawMessage `json:"dataCriacao"`
	Status      string          `json:"status"`
}

func (p failurePayload) toFailure() (Failure, error) {
	if err := validate.Struct(p); err != nil {
		return Failure{}, err
	}
	st, err := ParseStatus(p.Status)
	if err != nil {
		return Failure{}, err
	}
	created, _ := ParseTimestamp(p.CreatedAt)
	return Failure{
		ID:          string(p.ID),
		Category:    ParseCategory(p.Category),
		Description: p.Description,
		CreatedAt:   created,
		Status:      st,
	}, nil
}

// timestampLayouts are tried in order; zone-less layouts are read in the
// viewer's local zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads a creation timestamp sent as an ISO-8601 string or as
// epoch milliseconds. It returns the zero time and false for anything it
// cannot read.
func ParseTimestamp(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DecodeFailure decodes a single failure record.
func DecodeFailure(raw []byte) (Failure, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Failure{}, NewDecodeError("failure", errors.New("empty body"))
	}
	var p failurePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Failure{}, NewDecodeError("failure", err)
	}
	f, err := p.toFailure()
	if err != nil {
		return Failure{}, NewDecodeError("failure", err)
	}
	return f, nil
}

// DecodeFailures decodes a list of failure records. One bad element fails the
// whole list, and so does an id repeated in any spelling (7 and "7" clash).
func DecodeFailures(raw []byte) ([]Failure, error) {
	var ps []failurePayload
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, NewDecodeError("failure list", err)
	}
	out := make([]Failure, 0, len(ps))
	seen := make(map[string]int, len(ps))
	for i, p := range ps {
		f, err := p.toFailure()
		if err != nil {
			return nil, NewDecodeError(fmt.Sprintf("failure list[%d]", i), err)
		}
		if j, dup := seen[f.ID]; dup {
			return nil, NewDecodeError(fmt.Sprintf("failure list[%d]", i),
				fmt.Errorf("%w %q, first at [%d]", ErrDuplicateID, f.ID, j))
		}
		seen[f.ID] = i
		out = append(out, f)
	}
	return out, nil
}

func DecodeUser(raw []byte) (User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, NewDecodeError("user", err)
	}
	if err := validate.Struct(u); err != nil {
		return User{}, NewDecodeError("user", err)
	}
	return u, nil
}

func DecodeUsers(raw []byte) ([]User, error) {
	var us []User
	if err := json.Unmarshal(raw, &us); err != nil {
		return nil, NewDecodeError("user list", err)
	}
	for i := range us {
		if err := validate.Struct(us[i]); err != nil {
			return nil, NewDecodeError(fmt.Sprintf("user list[%d]", i), err)
		}
	}
	return us, nil
}

func DecodeLoginResponse(raw []byte) (*LoginResponse, error) {
	var r LoginResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, NewDecodeError("login response", err)
	}
	if err := validate.Struct(r); err != nil {
		return nil, NewDecodeError("login response", err)
	}
	return &r, nil
}
