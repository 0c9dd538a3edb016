// Package models holds the failboard domain types and the boundary that turns
// backend JSON into them.
//
// Wire payloads use the backend's Portuguese field names (tipo, descricao,
// dataCriacao). Decode* functions parse and validate a payload in one step;
// anything malformed comes back as a *DecodeError matching ErrDecode, so the
// state machine never sees a half-filled record.
package models
