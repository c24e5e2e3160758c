package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/service/mocks"
	"github.com/fsdevblog/dzstore/pkg/uow"
	uowmocks "github.com/fsdevblog/dzstore/pkg/uow/mocks"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockUserRepo *mocks.MockUserRepository
	mockTxRepo   *mocks.MockPointTransactionRepository
	ledger       *LedgerService
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockTxRepo = mocks.NewMockPointTransactionRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.PointTransactionRepoName)).
		Return(s.mockTxRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.PointTransactionRepoName)).
		Return(s.mockTxRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	ledger, err := NewLedgerService(s.mockUOW)
	s.Require().NoError(err)
	s.ledger = ledger
}

func (s *LedgerServiceTestSuite) TestRejectsNonPositiveAmounts() {
	s.mockUserRepo.EXPECT().AddPoints(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.ledger.Debit(s.T().Context(), LedgerEntryArgs{UserID: 1, Amount: 0})
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
	_, err = s.ledger.Credit(s.T().Context(), LedgerEntryArgs{UserID: 1, Amount: -5})
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
	_, err = s.ledger.AdjustPoints(s.T().Context(), 1, 0, "")
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestDebitInsufficientFunds() {
	s.mockUserRepo.EXPECT().AddPoints(gomock.Any(), int64(1), int64(-500)).Return(int64(0), domain.ErrInsufficientFunds)
	s.mockTxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.ledger.Debit(s.T().Context(), LedgerEntryArgs{
		UserID: 1,
		Amount: 500,
		Type:   domain.TransactionTypePurchase,
	})
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestCreditRecordsTransaction() {
	s.mockUserRepo.EXPECT().AddPoints(gomock.Any(), int64(1), int64(50)).Return(int64(150), nil)
	s.mockTxRepo.EXPECT().Create(gomock.Any(), repoargs.PointTransactionCreate{
		UserID:      1,
		Amount:      50,
		Type:        domain.TransactionTypeRefund,
		Description: "Refund for cancelled order ORD-1",
	}).Return(&domain.PointTransaction{ID: 7}, nil)

	balance, err := s.ledger.Credit(s.T().Context(), LedgerEntryArgs{
		UserID:      1,
		Amount:      50,
		Type:        domain.TransactionTypeRefund,
		Description: "Refund for cancelled order ORD-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(150), balance)
}

func (s *LedgerServiceTestSuite) TestAdjustPoints() {
	s.mockUserRepo.EXPECT().AddPoints(gomock.Any(), int64(3), int64(-20)).Return(int64(80), nil)
	s.mockTxRepo.EXPECT().Create(gomock.Any(), repoargs.PointTransactionCreate{
		UserID:      3,
		Amount:      -20,
		Type:        domain.TransactionTypeAdminAdjust,
		Description: "Admin adjustment",
	}).Return(&domain.PointTransaction{ID: 8}, nil)

	balance, err := s.ledger.AdjustPoints(s.T().Context(), 3, -20, "")
	s.Require().NoError(err)
	s.Equal(int64(80), balance)
}

func (s *LedgerServiceTestSuite) TestReconcile() {
	s.mockTxRepo.EXPECT().Aggregate(gomock.Any(), int64(1)).
		Return(&repoargs.LedgerAggregation{Balance: 100, TransactionsSum: 100}, nil)
	s.mockTxRepo.EXPECT().Aggregate(gomock.Any(), int64(2)).
		Return(&repoargs.LedgerAggregation{Balance: 100, TransactionsSum: 90}, nil)

	report, err := s.ledger.Reconcile(s.T().Context(), 1)
	s.Require().NoError(err)
	s.True(report.Consistent())

	report, err = s.ledger.Reconcile(s.T().Context(), 2)
	s.Require().NoError(err)
	s.False(report.Consistent())
	s.Equal(int64(10), report.Drift)
}

func (s *LedgerServiceTestSuite) TestGetBalance() {
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&domain.User{ID: 1, Points: 42}, nil)
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(nil, domain.ErrRecordNotFound)

	balance, err := s.ledger.GetBalance(s.T().Context(), 1)
	s.Require().NoError(err)
	s.Equal(int64(42), balance)

	_, err = s.ledger.GetBalance(s.T().Context(), 2)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}
