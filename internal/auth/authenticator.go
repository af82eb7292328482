package auth

import (
	"context"

	"github.com/splitq/splitq/internal/models"
)

// Authenticator is the credential boundary. Implementations own how a
// credential is stored and verified; everything above this interface only
// ever sees a resolved user.
type Authenticator interface {
	// Register creates an account for the email with the given credential
	// and returns the new user.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential for the email and returns the
	// matching user, or an error when the pair does not check out.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether a credential is acceptable for
	// this implementation before any account is touched.
	ValidateCredential(credential string) error
}
