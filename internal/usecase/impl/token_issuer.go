package impl

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/repository"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/google/uuid"
)

// tokenIssuer signs tokens and persists the records that back them. It is
// shared by every flow that ends in a signed-in user.
type tokenIssuer struct {
	tokens service.TokenService
}

// issuePair signs an access and refresh token and stores the refresh record.
// A nil parentID starts a new chain in familyID.
func (ti *tokenIssuer) issuePair(
	ctx context.Context,
	refreshRepo repository.RefreshTokenRepository,
	user *entity.User,
	familyID uuid.UUID,
	parentID *uuid.UUID,
	now time.Time,
) (*entity.TokenPair, error) {
	access, err := ti.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refresh, err := ti.tokens.IssueRefreshToken(user.ID, familyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	record := &entity.RefreshToken{
		ID:        refresh.ID,
		UserID:    user.ID,
		FamilyID:  familyID,
		ParentID:  parentID,
		TokenHash: ti.tokens.HashToken(refresh.Value),
		ExpiresAt: refresh.ExpiresAt,
		CreatedAt: now,
	}
	if err := refreshRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &entity.TokenPair{
		AccessToken:      access.Value,
		RefreshToken:     refresh.Value,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

// issueOnboarding signs a single-use onboarding token and records its jti.
func (ti *tokenIssuer) issueOnboarding(
	ctx context.Context,
	onboardingRepo repository.OnboardingTokenRepository,
	user *entity.User,
	sessionID uuid.UUID,
	now time.Time,
) (*service.IssuedToken, error) {
	token, err := ti.tokens.IssueOnboardingToken(user.ID, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue onboarding token")
	}

	record := &entity.OnboardingToken{
		ID:        token.ID,
		UserID:    user.ID,
		SessionID: sessionID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: now,
	}
	if err := onboardingRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store onboarding token")
	}

	return token, nil
}
