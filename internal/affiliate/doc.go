// Package affiliate defines the referral-code vocabulary of the
// attribution system: the validated Code type, normalization of raw
// tokens, and extraction of tokens from landing-page URLs.
package affiliate
