// Package user provides the User aggregate: a registered buyer or administrator
// identified by a unique email and authenticated by a password hash.
package user
