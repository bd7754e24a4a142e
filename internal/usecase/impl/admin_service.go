package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/repository"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type adminService struct {
	txManager  repository.TransactionManager
	normalizer service.IdentifierNormalizer
	logger     *slog.Logger
	now        func() time.Time
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Normalizer service.IdentifierNormalizer
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:  params.TxManager,
		normalizer: params.Normalizer,
		logger:     params.Logger,
		now:        time.Now,
	}
}

// SeedAdmins makes every listed identifier an admin account, creating the
// user when needed. Running it again changes nothing.
func (srv *adminService) SeedAdmins(ctx context.Context, identifiers []string) (*usecase.SeedAdminsOutput, error) {
	normalized := make([]entity.Identifier, 0, len(identifiers))
	for _, raw := range identifiers {
		identifier, err := srv.normalizer.Normalize(raw)
		if err != nil {
			return nil, domainerrors.ErrInvalidIdentifier.WrapMessage("admin identifier " + raw + " is not a phone number or email")
		}
		normalized = append(normalized, identifier)
	}

	now := srv.now()
	output := &usecase.SeedAdminsOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		for _, identifier := range normalized {
			user, err := userRepo.FindByIdentifier(ctx, identifier.Value)
			if errors.Is(err, repository.ErrUserNotFound) {
				err = userRepo.Create(ctx, &entity.User{
					ID:             uuid.New(),
					Identifier:     identifier.Value,
					IdentifierKind: identifier.Kind,
					Role:           entity.RoleAdmin,
					IsVerified:     true,
					CreatedAt:      now,
					UpdatedAt:      now,
				})
				if err != nil {
					return errors.Wrap(err, "failed to create admin")
				}
				output.Created++

				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to find admin")
			}

			if user.Role == entity.RoleAdmin {
				continue
			}
			if err := userRepo.GrantRole(ctx, user.ID, entity.RoleAdmin, now); err != nil {
				return errors.Wrap(err, "failed to promote admin")
			}
			output.Promoted++
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed admins")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Admin accounts seeded",
		slog.Int("configured", len(normalized)),
		slog.Int("created", output.Created),
		slog.Int("promoted", output.Promoted),
	)

	return output, nil
}
