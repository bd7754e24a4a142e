package repository

import "context"

// TransactionManager runs a unit of work atomically. The use case layer
// depends on it instead of on a specific DB driver.
type TransactionManager interface {
	// Execute runs fn within a database transaction. A non-nil error from fn
	// rolls back; otherwise the transaction commits.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	NewOtpSessionRepository() OtpSessionRepository
	NewUserRepository() UserRepository
	NewRefreshTokenRepository() RefreshTokenRepository
	NewOnboardingTokenRepository() OnboardingTokenRepository
}
