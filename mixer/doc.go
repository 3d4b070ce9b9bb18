// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mixer connects the share allocator to persistent state.

Every read goes through shares.Sanitize, so corrupt or hand-edited stored
data is silently repaired. Every mutation loads the live shares, applies one
allocator operation, and persists the result before returning:

	svc := mixer.New(store.NewSQLStore(conn))
	live, err := svc.SetShare(ctx, "canada", "ndp", 18.25)
	state, err := svc.State(ctx, "canada", true)

# Failure Policy

Store failures never block the mixer. Failed reads fall back to defaults
(all-zero shares, no baseline, label "STAT") and failed share writes are
logged and dropped. Poll-definition writes are the exception: CreatePoll,
DeletePoll and SetActivePoll return their errors.

# Polls

The built-in default poll always exists and cannot be deleted. Additional
polls are created with a title and an ordered category list and get a
UUIDv7 ID.

# Concurrency

Mutations on one Service are serialized. The allocator itself is pure and
needs no locking.
*/
package mixer
