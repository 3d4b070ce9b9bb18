// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// AdminKeyHeader carries the admin key on destructive poll requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// GenerateAdminKey derives the admin key for a poll definition. The key is
// never stored; it can always be recomputed from the poll ID and salt.
func GenerateAdminKey(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// ValidateAdminKey checks adminKey against the key derived for pollID.
func ValidateAdminKey(pollID, adminKey, salt string) error {
	if adminKey == "" {
		return ErrMissingAdminKey
	}
	expected := GenerateAdminKey(pollID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// AuthorizeRequest validates the admin key sent in the request header.
func AuthorizeRequest(r *http.Request, pollID, salt string) error {
	return ValidateAdminKey(pollID, strings.TrimSpace(r.Header.Get(AdminKeyHeader)), salt)
}
