// Package codestore keeps short-lived values such as e-mail activation and
// password-reset codes. Every entry carries its own expiry which is checked on
// read, so a backend that keeps stale keys never hands them out.
package codestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned for missing and expired keys alike.
var ErrNotFound = errors.New("code not found or expired")

type Store interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type envelope struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func seal(value []byte, ttl time.Duration, now time.Time) ([]byte, error) {
	return json.Marshal(envelope{Value: value, ExpiresAt: now.Add(ttl)})
}

func open(raw []byte, now time.Time) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if !now.Before(env.ExpiresAt) {
		return nil, ErrNotFound
	}
	return env.Value, nil
}

// PutJSON stores v as JSON under key.
func PutJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, raw, ttl)
}

// GetJSON loads the value under key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
