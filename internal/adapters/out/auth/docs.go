// Package auth implements the credential ports: bcrypt password hashing and
// HS256 JSON Web Tokens.
//
// Access and refresh tokens share a signing key and carry the user id in "sub",
// a unique "jti" and an "exp". The "typ" claim keeps one kind from being
// accepted where the other is expected.
package auth
