package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWalletDebit(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		amount     string
		wantErr    bool
		wantAmount string
	}{
		{name: "covered", balance: "100", amount: "40.50", wantAmount: "59.50"},
		{name: "exact balance", balance: "100", amount: "100", wantAmount: "0"},
		{name: "insufficient", balance: "100", amount: "150", wantErr: true, wantAmount: "100"},
		{name: "zero", balance: "100", amount: "0", wantErr: true, wantAmount: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := &Wallet{Amount: dec(tt.balance)}

			err := wallet.Debit(dec(tt.amount))

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
			} else {
				require.NoError(t, err)
				assert.True(t, wallet.PreviousAmount.Equal(dec(tt.balance)))
			}

			assert.True(t, wallet.Amount.Equal(dec(tt.wantAmount)), "balance is %s", wallet.Amount)
		})
	}
}

func TestWalletApply(t *testing.T) {
	wallet := &Wallet{Amount: dec("10")}

	require.NoError(t, wallet.Apply(TransactionActionDeposit, dec("90")))
	assert.True(t, wallet.Amount.Equal(dec("100")))
	assert.True(t, wallet.PreviousAmount.Equal(dec("10")))

	require.NoError(t, wallet.Apply(TransactionActionPurchase, dec("30")))
	assert.True(t, wallet.Amount.Equal(dec("70")))

	assert.ErrorIs(t, wallet.Apply(TransactionAction("REFUND"), dec("1")), ErrBadRequest)
	assert.ErrorIs(t, wallet.Credit(dec("-5")), ErrBadRequest)
}

func TestTransactionComplete(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		status  TransactionStatus
		wantErr bool
	}{
		{name: "pending cash", channel: ChannelCash, status: TransactionStatusPending},
		{name: "pending gateway", channel: Channel("card"), status: TransactionStatusPending, wantErr: true},
		{name: "already completed", channel: ChannelCash, status: TransactionStatusCompleted, wantErr: true},
		{name: "cancelled", channel: ChannelCash, status: TransactionStatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &Transaction{Channel: tt.channel, Status: tt.status}

			err := txn.Complete()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
				assert.Equal(t, tt.status, txn.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, TransactionStatusCompleted, txn.Status)
		})
	}
}

func TestTransactionCancel(t *testing.T) {
	txn := &Transaction{Status: TransactionStatusPending}

	require.NoError(t, txn.Cancel())
	assert.Equal(t, TransactionStatusCancelled, txn.Status)
	assert.ErrorIs(t, txn.Cancel(), ErrBadRequest)
}

func TestPaymentMethodChannel(t *testing.T) {
	assert.Equal(t, ChannelWallet, (&PaymentMethod{Name: NewBilingualText(" Wallet ", "")}).Channel())
	assert.Equal(t, ChannelCash, (&PaymentMethod{Name: NewBilingualText("CASH", "نقدي")}).Channel())
	assert.Equal(t, Channel("mada"), (&PaymentMethod{Name: NewBilingualText("Mada", "")}).Channel())
}
