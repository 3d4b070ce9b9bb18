// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store is the key-value persistence used for mixer state.
//
// Store is deliberately small (Load, Save, Delete on strings) so the mixer
// can treat it as an injected capability. SQLStore runs on the kv table from
// the db package; MemoryStore is for tests. Key names are versioned (see
// keys.go) and values are JSON that callers validate themselves.
package store
