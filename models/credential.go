package models

// Credential is the issued API key material. Immutable once loaded; the
// gateway only ever reads it.
type Credential struct {
	APIKey string
	Secret []byte
	Role   Role
}

// CredentialSet is an in-memory, read-only credential index keyed by API key.
// It is built once at process start and satisfies the gateway's store
// contract.
type CredentialSet map[string]Credential

func (s CredentialSet) Lookup(apiKey string) (Credential, bool) {
	c, ok := s[apiKey]
	return c, ok
}
