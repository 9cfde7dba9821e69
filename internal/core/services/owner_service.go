package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/platform/config"
	"github.com/SscSPs/mei_retail_app/internal/utils"
	"github.com/google/uuid"
)

type ownerService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewOwnerService creates the owner resolver.
func NewOwnerService(userRepo portsrepo.UserRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.OwnerSvc {
	return &ownerService{userRepo: userRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.OwnerSvc = (*ownerService)(nil)

func (s *ownerService) ResolveOwner(ctx context.Context, userEmail string) (*domain.OwnerContext, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(userEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to find owner %s: %w", userEmail, err)
	}
	inventory, err := s.userRepo.FindInventoryByUser(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory of owner %s: %w", user.UserID, err)
	}
	accounts, err := s.ledgerRepo.FindAccountsByUser(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts of owner %s: %w", user.UserID, err)
	}

	owner := &domain.OwnerContext{User: *user, Inventory: *inventory, Accounts: make(map[domain.WalletType]domain.Account, len(accounts))}
	for _, acc := range accounts {
		owner.Accounts[acc.WalletType] = acc
	}
	return owner, nil
}

func (s *ownerService) ListOwners(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

type authService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	userRepo  portsrepo.UserRepositoryFacade
	owners    portssvc.OwnerSvc
	jwtSecret string
	jwtIssuer string
	jwtExpiry time.Duration
}

// NewAuthService creates the registration and login service.
func NewAuthService(cfg *config.Config, uow portsrepo.UnitOfWork, userRepo portsrepo.UserRepositoryFacade, owners portssvc.OwnerSvc) portssvc.AuthSvc {
	return &authService{
		uow:       uow,
		userRepo:  userRepo,
		owners:    owners,
		jwtSecret: cfg.JWTSecret,
		jwtIssuer: cfg.JWTIssuer,
		jwtExpiry: cfg.JWTExpiryDuration,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) RegisterOwner(ctx context.Context, req dto.RegisterRequest) (*domain.OwnerContext, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: email and name are required", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.Now()
	userID := uuid.NewString()
	owner := domain.OwnerContext{
		User: domain.User{
			UserID:       userID,
			Email:        email,
			Name:         strings.TrimSpace(req.Name),
			PasswordHash: hash,
			AuditFields:  auditFields(userID, now),
		},
		Inventory: domain.Inventory{
			InventoryID: uuid.NewString(),
			UserID:      userID,
			AuditFields: auditFields(userID, now),
		},
		Accounts: make(map[domain.WalletType]domain.Account, len(domain.Wallets)),
	}
	accounts := make([]domain.Account, 0, len(domain.Wallets))
	for _, w := range domain.Wallets {
		acc := domain.Account{AccountID: uuid.NewString(), UserID: userID, WalletType: w, AuditFields: auditFields(userID, now)}
		owner.Accounts[w] = acc
		accounts = append(accounts, acc)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Users.SaveUser(ctx, owner.User); err != nil {
			return err
		}
		if err := repos.Users.SaveInventory(ctx, owner.Inventory); err != nil {
			return err
		}
		return repos.Ledger.SaveAccounts(ctx, accounts)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("owner %s already registered: %w", email, err)
		}
		s.LogError(ctx, err, "Failed to register owner", slog.String("email", email))
		return nil, fmt.Errorf("failed to register owner: %w", err)
	}

	s.LogInfo(ctx, "Owner registered", slog.String("user_id", userID))
	return &owner, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	now := s.Now()
	token, err := utils.GenerateJWT(user.UserID, user.Email, s.jwtSecret, s.jwtExpiry, s.jwtIssuer, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: now.Add(s.jwtExpiry)}, nil
}
