// Package auth implements the OAuth credential lifecycle: the interactive
// authorization flow ([Session]), durable storage with a sqlite mirror and
// transparent refresh ([Store]), and the [Credential] record both share.
package auth
