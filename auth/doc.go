// Package auth implements account registration, login, and session
// resolution.
//
// Passwords are hashed with bcrypt. Session tokens are signed JWTs, but
// validity also requires a live server-side session record keyed by the
// token's BLAKE2b digest, which makes logout an actual revocation
// rather than a client-side fiction.
package auth
