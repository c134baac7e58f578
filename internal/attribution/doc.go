// Package attribution implements the affiliate attribution cache: it
// captures a referral code from a landing URL, persists it redundantly
// in two storage media with independent expiry semantics, and exposes a
// read-through accessor that reconciles the two.
//
// Every public operation on Store is total: storage and parse failures
// are logged and degrade to "no attribution", never returned as errors.
// The system runs on arbitrary visitor environments it does not
// control, so robustness is traded for silence here on purpose.
package attribution
