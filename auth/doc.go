// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and checks admin keys for poll definitions.

# Admin Keys

Creating a poll returns an admin key; deleting it requires the key in the
X-Admin-Key header:

	adminKey := auth.GenerateAdminKey(pollID, salt)
	err := auth.AuthorizeRequest(r, pollID, salt)

Keys are HMAC-SHA256 of the poll ID under the server's ADMIN_KEY_SALT,
URL-safe base64 encoded without padding. They are deterministic, so nothing
is stored; comparison is constant time.

The built-in default poll has no admin key and cannot be deleted.
*/
package auth
