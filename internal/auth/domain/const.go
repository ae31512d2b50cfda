// Package domain defines administrator identities and the credentials that authenticate them.
// Credentials are configured as "actor:hash" pairs; the hash is an Argon2id PHC string.
package domain

const (
	// CredentialSeparator separates entries in the credential list.
	CredentialSeparator = ";"

	// ActorSeparator separates the actor name from its hash, and from the token in a bearer value.
	ActorSeparator = ":"

	// MaxActorNameLength bounds actor names, which are recorded on every stored version.
	MaxActorNameLength = 64
)
