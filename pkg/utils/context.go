package utils

import "context"

type contextKey string

const CredentialKey contextKey = "admin_credential"

// SetCredentialContext stores the caller-supplied admin credential.
func SetCredentialContext(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, CredentialKey, credential)
}

// GetCredentialFromContext returns the credential set by the admin
// middleware, if any.
func GetCredentialFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(CredentialKey)
	if val == nil {
		return "", false
	}

	credential, ok := val.(string)
	return credential, ok
}
