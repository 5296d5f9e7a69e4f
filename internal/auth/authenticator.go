// Package auth handles user credentials and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/walletwise/internal/models"
)

// Authenticator verifies who a user is. PasswordAuthenticator is the only
// implementation; an identity-provider sign-in would be another.
type Authenticator interface {
	// Register creates an account for email. The credential's format
	// depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials the implementation won't store.
	ValidateCredential(credential string) error
}
