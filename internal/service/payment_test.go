package service

import (
	"context"
	"testing"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/metinatakli/venue-checkout/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	tx          *mocks.MockTxManager
	catalog     *mocks.MockCatalogRepo
	bookingRepo *mocks.MockBookingRepo
	txnRepo     *mocks.MockTransactionRepo
	walletRepo  *mocks.MockWalletRepo
	service     *PaymentService
}

var (
	testOwner = domain.Caller{UserID: testUserID}
	testStaff = domain.Caller{UserID: "staff-1", Permissions: []string{domain.PermissionCompleteTransaction}}
)

func (s *PaymentServiceTestSuite) SetupTest() {
	s.tx = new(mocks.MockTxManager)
	s.catalog = new(mocks.MockCatalogRepo)
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.txnRepo = new(mocks.MockTransactionRepo)
	s.walletRepo = new(mocks.MockWalletRepo)

	s.service = NewPaymentService(s.tx, PaymentRepositories{
		Catalog:      s.catalog,
		Bookings:     s.bookingRepo,
		Transactions: s.txnRepo,
		Wallets:      s.walletRepo,
	}, newTestLogger(), CheckoutConfig{})
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func pendingTransaction(channel domain.Channel, action domain.TransactionAction, walletID *string) *domain.Transaction {
	return &domain.Transaction{
		ID:       "txn-1",
		UserID:   testUserID,
		Amount:   dec("50"),
		Currency: DefaultCurrency,
		Channel:  channel,
		Action:   action,
		Status:   domain.TransactionStatusPending,
		WalletID: walletID,
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "booking-1",
		BookingNumber: "WL-20260115-0001",
		UserID:        testUserID,
		EventID:       testEventID,
		Quantity:      3,
		UnitPrice:     dec("40"),
		TotalPrice:    dec("120"),
		Status:        domain.BookingStatusConfirmed,
		TransactionID: "txn-1",
	}
}

func (s *PaymentServiceTestSuite) TestCompleteTransaction() {
	tests := []struct {
		name       string
		caller     domain.Caller
		txn        *domain.Transaction
		setupMocks func()
		wantErr    error
		wantStatus domain.TransactionStatus
	}{
		{
			name:    "should require the completion permission",
			caller:  testOwner,
			txn:     pendingTransaction(domain.ChannelCash, domain.TransactionActionPurchase, nil),
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "should credit the wallet of a cash deposit",
			caller: testStaff,
			txn:    pendingTransaction(domain.ChannelCash, domain.TransactionActionDeposit, ptr("wallet-1")),
			setupMocks: func() {
				s.walletRepo.On("GetByIDForUpdate", mock.Anything, "wallet-1").Return(testWallet("10"), nil)
				s.walletRepo.On("UpdateBalance", mock.Anything, mock.MatchedBy(func(w *domain.Wallet) bool {
					return w.Amount.Equal(dec("60")) && w.PreviousAmount.Equal(dec("10"))
				})).Return(nil)
				s.txnRepo.On("UpdateStatus", mock.Anything, "txn-1", domain.TransactionStatusCompleted).Return(nil)
			},
			wantStatus: domain.TransactionStatusCompleted,
		},
		{
			name:    "should refuse to complete a gateway transaction by hand",
			caller:  testStaff,
			txn:     pendingTransaction(domain.Channel("card"), domain.TransactionActionPurchase, nil),
			wantErr: domain.ErrBadRequest,
		},
		{
			name:   "should refuse to complete a cancelled transaction",
			caller: testStaff,
			txn: func() *domain.Transaction {
				txn := pendingTransaction(domain.ChannelCash, domain.TransactionActionPurchase, nil)
				txn.Status = domain.TransactionStatusCancelled
				return txn
			}(),
			wantErr: domain.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.txnRepo.On("GetByIDForUpdate", mock.Anything, "txn-1").Return(tt.txn, nil)
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			txn, err := s.service.CompleteTransaction(context.Background(), tt.caller, "txn-1")

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr)
				s.txnRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantStatus, txn.Status)
			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *PaymentServiceTestSuite) TestCancelTransaction() {
	tests := []struct {
		name    string
		caller  domain.Caller
		wantErr error
	}{
		{
			name:   "should let the owner cancel",
			caller: testOwner,
		},
		{
			name:   "should let staff cancel",
			caller: testStaff,
		},
		{
			name:    "should forbid other users",
			caller:  domain.Caller{UserID: testOtherUserID},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.txnRepo.On("GetByIDForUpdate", mock.Anything, "txn-1").
				Return(pendingTransaction(domain.ChannelCash, domain.TransactionActionPurchase, nil), nil)
			s.txnRepo.On("UpdateStatus", mock.Anything, "txn-1", domain.TransactionStatusCancelled).Return(nil)

			txn, err := s.service.CancelTransaction(context.Background(), tt.caller, "txn-1")

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr)
				s.txnRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			s.Require().NoError(err)
			s.Equal(domain.TransactionStatusCancelled, txn.Status)
		})
	}
}

func (s *PaymentServiceTestSuite) TestRequestTopUp() {
	tests := []struct {
		name       string
		amount     string
		methodID   string
		setupMocks func()
		wantErr    error
	}{
		{
			name:     "should open a pending deposit into a new wallet",
			amount:   "250",
			methodID: testCashMethodID,
			setupMocks: func() {
				s.catalog.On("GetPaymentMethod", mock.Anything, testCashMethodID).Return(paymentMethod(testCashMethodID, "cash"), nil)
				s.walletRepo.On("GetByUserForUpdate", mock.Anything, testUserID, DefaultCurrency).
					Return(nil, domain.NotFound("wallet not found"))
				s.walletRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Wallet) bool {
					return w.UserID == testUserID && w.Amount.IsZero() && w.Active
				})).Return(nil)
				s.txnRepo.On("LockUser", mock.Anything, testUserID).Return(nil)
				s.txnRepo.On("CountPendingByUser", mock.Anything, testUserID).Return(0, nil)
				s.txnRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *domain.Transaction) bool {
					return txn.Action == domain.TransactionActionDeposit &&
						txn.Status == domain.TransactionStatusPending &&
						txn.WalletID != nil &&
						txn.Amount.Equal(dec("250"))
				})).Return(nil)
			},
		},
		{
			name:     "should reject a non-positive amount",
			amount:   "0",
			methodID: testCashMethodID,
			wantErr:  domain.ErrBadRequest,
		},
		{
			name:     "should only accept cash",
			amount:   "250",
			methodID: testCardMethodID,
			setupMocks: func() {
				s.catalog.On("GetPaymentMethod", mock.Anything, testCardMethodID).Return(paymentMethod(testCardMethodID, "card"), nil)
			},
			wantErr: domain.ErrBadRequest,
		},
		{
			name:     "should reject when the pending transaction cap is reached",
			amount:   "250",
			methodID: testCashMethodID,
			setupMocks: func() {
				s.catalog.On("GetPaymentMethod", mock.Anything, testCashMethodID).Return(paymentMethod(testCashMethodID, "cash"), nil)
				s.walletRepo.On("GetByUserForUpdate", mock.Anything, testUserID, DefaultCurrency).Return(testWallet("0"), nil)
				s.txnRepo.On("LockUser", mock.Anything, testUserID).Return(nil)
				s.txnRepo.On("CountPendingByUser", mock.Anything, testUserID).Return(3, nil)
			},
			wantErr: domain.ErrBadRequest,
		},
		{
			name:     "should reject an inactive wallet",
			amount:   "250",
			methodID: testCashMethodID,
			setupMocks: func() {
				wallet := testWallet("0")
				wallet.Active = false
				s.catalog.On("GetPaymentMethod", mock.Anything, testCashMethodID).Return(paymentMethod(testCashMethodID, "cash"), nil)
				s.walletRepo.On("GetByUserForUpdate", mock.Anything, testUserID, DefaultCurrency).Return(wallet, nil)
			},
			wantErr: domain.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			txn, err := s.service.RequestTopUp(context.Background(), testUserID, dec(tt.amount), tt.methodID)

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr)
				s.txnRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
				return
			}

			s.Require().NoError(err)
			s.Equal(domain.ChannelCash, txn.Channel)
			s.txnRepo.AssertExpectations(s.T())
			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *PaymentServiceTestSuite) TestConfirmBookingRequiresCompletedPayment() {
	booking := confirmedBooking()
	booking.Status = domain.BookingStatusPending

	s.bookingRepo.On("GetByIDForUpdate", mock.Anything, "booking-1").Return(booking, nil)
	s.txnRepo.On("GetByID", mock.Anything, "txn-1").
		Return(pendingTransaction(domain.ChannelCash, domain.TransactionActionPurchase, nil), nil)

	_, err := s.service.ConfirmBooking(context.Background(), testOwner, "booking-1")

	s.Require().ErrorIs(err, domain.ErrBadRequest)
	s.Equal(domain.BookingStatusPending, booking.Status)
	s.bookingRepo.AssertNotCalled(s.T(), "UpdateProgress", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestAddUsedQuantity() {
	tests := []struct {
		name       string
		caller     domain.Caller
		used       int
		n          int
		wantErr    error
		wantUsed   int
		wantStatus domain.BookingStatus
	}{
		{
			name:       "should record partial use",
			caller:     testOwner,
			n:          2,
			wantUsed:   2,
			wantStatus: domain.BookingStatusConfirmed,
		},
		{
			name:       "should complete the booking when fully used",
			caller:     testStaff,
			used:       1,
			n:          2,
			wantUsed:   3,
			wantStatus: domain.BookingStatusCompleted,
		},
		{
			name:    "should reject using more than remains",
			caller:  testOwner,
			used:    2,
			n:       2,
			wantErr: domain.ErrBadRequest,
		},
		{
			name:    "should forbid other users",
			caller:  domain.Caller{UserID: testOtherUserID},
			n:       1,
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			booking := confirmedBooking()
			booking.UsedQuantity = tt.used

			s.bookingRepo.On("GetByIDForUpdate", mock.Anything, "booking-1").Return(booking, nil)
			s.bookingRepo.On("UpdateProgress", mock.Anything, booking).Return(nil)

			got, err := s.service.AddUsedQuantity(context.Background(), tt.caller, "booking-1", tt.n)

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr)
				s.bookingRepo.AssertNotCalled(s.T(), "UpdateProgress", mock.Anything, mock.Anything)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantUsed, got.UsedQuantity)
			s.Equal(tt.wantStatus, got.Status)
		})
	}
}

func (s *PaymentServiceTestSuite) TestGetBooking() {
	s.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

	_, err := s.service.GetBooking(context.Background(), testOtherUserID, "booking-1")
	s.Require().ErrorIs(err, domain.ErrForbidden)

	booking, err := s.service.GetBooking(context.Background(), testUserID, "booking-1")
	s.Require().NoError(err)
	s.Equal("WL-20260115-0001", booking.BookingNumber)
}

func (s *PaymentServiceTestSuite) TestListBookings() {
	pagination := domain.NewPagination(2, 5)
	metadata := domain.NewMetadata(7, 2, 5)

	s.bookingRepo.On("ListByUser", mock.Anything, testUserID, pagination).
		Return([]domain.Booking{*confirmedBooking()}, metadata, nil)

	bookings, got, err := s.service.ListBookings(context.Background(), testUserID, pagination)
	s.Require().NoError(err)

	s.Len(bookings, 1)
	s.Equal(2, got.LastPage)
}
