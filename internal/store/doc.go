// Package store defines the KeyValueStore capability the attribution
// core persists through, plus the available backends.
//
// Two kinds of medium exist, mirroring the browser's cookie jar versus
// its structured local storage: media with native expiry honor the ttl
// passed to Set (Memory, Redis, the site package's cookie adapter),
// media without it ignore ttl entirely (SQLite, Postgres) and rely on
// the caller embedding expiry in the payload.
package store
