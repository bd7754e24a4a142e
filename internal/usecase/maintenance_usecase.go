package usecase

import "context"

// CleanupOutput counts the rows removed by one cleanup pass.
type CleanupOutput struct {
	OtpSessions      int64
	RefreshTokens    int64
	OnboardingTokens int64
}

// MaintenanceUsecase reclaims storage held by expired records.
type MaintenanceUsecase interface {
	Cleanup(ctx context.Context) (*CleanupOutput, error)
}
