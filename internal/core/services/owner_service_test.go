package services_test

import (
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/utils"
	"github.com/stretchr/testify/suite"
)

type OwnerServiceSuite struct {
	RetailSuite
}

func TestOwnerServiceSuite(t *testing.T) {
	suite.Run(t, new(OwnerServiceSuite))
}

func (s *OwnerServiceSuite) TestRegisterCreatesBothWallets() {
	s.Len(s.owner.Accounts, 2)
	_, ok := s.owner.AccountFor(domain.WalletBank)
	s.True(ok)
	_, ok = s.owner.AccountFor(domain.WalletCash)
	s.True(ok)
	s.Equal(s.owner.User.UserID, s.owner.Inventory.UserID)
}

func (s *OwnerServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.svc.Auth.RegisterOwner(s.ctx, dto.RegisterRequest{Email: "OWNER@shop.com", Name: "Again", Password: "another-pass"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	owners, err := s.svc.Owner.ListOwners(s.ctx)
	s.Require().NoError(err)
	s.Len(owners, 1)
}

func (s *OwnerServiceSuite) TestRegisterShortPassword() {
	_, err := s.svc.Auth.RegisterOwner(s.ctx, dto.RegisterRequest{Email: "new@shop.com", Name: "New", Password: "short"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *OwnerServiceSuite) TestResolveOwnerIgnoresCase() {
	owner, err := s.svc.Owner.ResolveOwner(s.ctx, "Owner@Shop.com")
	s.Require().NoError(err)
	s.Equal(s.owner.User.UserID, owner.User.UserID)
	s.Equal(s.owner.Accounts, owner.Accounts)

	_, err = s.svc.Owner.ResolveOwner(s.ctx, "nobody@shop.com")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *OwnerServiceSuite) TestLogin() {
	resp, err := s.svc.Auth.Login(s.ctx, dto.LoginRequest{Email: ownerEmail, Password: "correct-horse"})
	s.Require().NoError(err)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	s.Require().NoError(err)
	s.Equal(s.owner.User.UserID, claims.Subject)
	s.Equal(ownerEmail, claims.Email)
	s.Equal("mei-test", claims.Issuer)

	_, err = s.svc.Auth.Login(s.ctx, dto.LoginRequest{Email: ownerEmail, Password: "wrong-horse"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.svc.Auth.Login(s.ctx, dto.LoginRequest{Email: "nobody@shop.com", Password: "correct-horse"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}
