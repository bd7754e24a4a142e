package usecase

import "context"

// SeedAdminsOutput counts the accounts touched by one seeding pass.
type SeedAdminsOutput struct {
	Created  int
	Promoted int
}

// AdminUsecase grants the admin role to operator-listed identifiers. Admin
// is never reachable through role selection.
type AdminUsecase interface {
	SeedAdmins(ctx context.Context, identifiers []string) (*SeedAdminsOutput, error)
}
