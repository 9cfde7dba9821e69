package services_test

import (
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceSuite struct {
	RetailSuite
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) TestRecordEntry_ExpenseNeedsFunds() {
	_, err := s.svc.Ledger.RecordEntry(s.ctx, s.owner, dto.RecordEntryRequest{
		Detail: domain.DetailRent, Amount: dec("5000"), PaymentMethod: domain.PaymentBankTransfer,
	})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	rent, err := s.svc.Ledger.RecordEntry(s.ctx, s.owner, dto.RecordEntryRequest{
		Detail: domain.DetailRent, Amount: dec("50"), PaymentMethod: domain.PaymentBankTransfer, Description: "March rent",
	})
	s.Require().NoError(err)
	s.assertDec("-50", rent.Amount)
	s.Equal(domain.WalletBank, rent.WalletDestination)
	s.assertDec("150", s.balances().Bank)

	opex, err := s.svc.Profit.CalculateTotalOperationalExpenses(s.ctx, ownerEmail)
	s.Require().NoError(err)
	s.assertDec("-50", opex)
	s.assertDec("-50", s.netProfit())
}

func (s *LedgerServiceSuite) TestRecordEntry_DirectionOverride() {
	refund, err := s.svc.Ledger.RecordEntry(s.ctx, s.owner, dto.RecordEntryRequest{
		Detail: domain.DetailOther, Amount: dec("15"), PaymentMethod: domain.PaymentCash, Direction: dto.DirectionIn,
	})
	s.Require().NoError(err)
	s.assertDec("15", refund.Amount)
	s.assertDec("115", s.balances().Cash)
}

func (s *LedgerServiceSuite) TestRecordEntry_RejectsSystemDetails() {
	for _, d := range []domain.TransactionDetail{domain.DetailSale, domain.DetailCostOfGoodsSold, domain.DetailProfitWithdrawal, domain.DetailTransfer} {
		_, err := s.svc.Ledger.RecordEntry(s.ctx, s.owner, dto.RecordEntryRequest{
			Detail: d, Amount: dec("1"), PaymentMethod: domain.PaymentCash,
		})
		s.ErrorIs(err, apperrors.ErrValidation, string(d))
	}
}

func (s *LedgerServiceSuite) TestTransfer() {
	_, err := s.svc.Ledger.Transfer(s.ctx, s.owner, dto.TransferRequest{From: domain.WalletCash, To: domain.WalletBank, Amount: dec("101")})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	txns, err := s.svc.Ledger.Transfer(s.ctx, s.owner, dto.TransferRequest{From: domain.WalletBank, To: domain.WalletCash, Amount: dec("120")})
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal(txns[0].Reference, txns[1].Reference)

	b := s.balances()
	s.assertDec("80", b.Bank)
	s.assertDec("220", b.Cash)
	s.assertDec("300", b.Total)
	s.True(s.netProfit().IsZero())
}

func (s *LedgerServiceSuite) TestWithdrawProfit() {
	_, err := s.svc.Ledger.WithdrawProfit(s.ctx, s.owner, dto.WithdrawProfitRequest{Amount: dec("1"), Wallet: domain.WalletBank})
	s.ErrorIs(err, apperrors.ErrInsufficientProfit)

	s.sell([]dto.SaleItemRequest{line("v1", 2, "100")}, pay(domain.PaymentCash, "200"))

	_, err = s.svc.Ledger.WithdrawProfit(s.ctx, s.owner, dto.WithdrawProfitRequest{Amount: dec("50"), Wallet: domain.WalletCash})
	s.Require().NoError(err)
	s.assertDec("20", s.netProfit())
	s.assertDec("250", s.balances().Cash)

	_, err = s.svc.Ledger.WithdrawProfit(s.ctx, s.owner, dto.WithdrawProfitRequest{Amount: dec("30"), Wallet: domain.WalletCash})
	s.ErrorIs(err, apperrors.ErrInsufficientProfit)
}

func (s *LedgerServiceSuite) TestWithdrawProfit_WalletMustCoverIt() {
	s.sell([]dto.SaleItemRequest{line("v1", 10, "100")}, pay(domain.PaymentPix, "1000"))

	_, err := s.svc.Ledger.WithdrawProfit(s.ctx, s.owner, dto.WithdrawProfitRequest{Amount: dec("300"), Wallet: domain.WalletCash})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *LedgerServiceSuite) TestReinvestProfit() {
	_, err := s.svc.Ledger.ReinvestProfit(s.ctx, s.owner, dto.ReinvestProfitRequest{Amount: dec("0"), FromWallet: domain.WalletCash, ToWallet: domain.WalletBank})
	s.ErrorIs(err, apperrors.ErrInvalidReinvestment)

	_, err = s.svc.Ledger.ReinvestProfit(s.ctx, s.owner, dto.ReinvestProfitRequest{Amount: dec("10"), FromWallet: domain.WalletCash, ToWallet: domain.WalletBank})
	s.ErrorIs(err, apperrors.ErrInvalidReinvestment)
	s.ErrorIs(err, apperrors.ErrInsufficientProfit)
	s.Equal("INVALID_REINVESTMENT", apperrors.Kind(err))

	s.sell([]dto.SaleItemRequest{line("v1", 2, "100")}, pay(domain.PaymentCash, "200"))
	txns, err := s.svc.Ledger.ReinvestProfit(s.ctx, s.owner, dto.ReinvestProfitRequest{Amount: dec("20"), FromWallet: domain.WalletCash, ToWallet: domain.WalletBank})
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal(domain.DetailProfitWithdrawal, txns[0].Detail)
	s.Equal(domain.DetailMoneyInvestment, txns[1].Detail)

	s.assertDec("50", s.netProfit())
	b := s.balances()
	s.assertDec("220", b.Bank)
	s.assertDec("280", b.Cash)
}

func (s *LedgerServiceSuite) TestListTransactions_HidesCOGS() {
	s.sell([]dto.SaleItemRequest{line("v1", 1, "100")}, pay(domain.PaymentPix, "100"))

	txns, err := s.svc.Ledger.ListTransactions(s.ctx, s.owner, nil, nil)
	s.Require().NoError(err)
	s.NotEmpty(txns)
	for _, t := range txns {
		s.NotEqual(domain.DetailCostOfGoodsSold, t.Detail)
	}
	s.Equal(s.ledgerSize()-1, len(txns))
}
