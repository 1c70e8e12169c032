package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirasundara/payments-engine/internal/domain"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		input string
		want  domain.Kind
	}{
		{input: "deposit", want: domain.KindDeposit},
		{input: " Withdrawal ", want: domain.KindWithdrawal},
		{input: "DISPUTE", want: domain.KindDispute},
		{input: "resolve", want: domain.KindResolve},
		{input: "\tchargeback", want: domain.KindChargeback},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := domain.ParseKind(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, must(domain.ParseKind(got.String())))
		})
	}

	_, err := domain.ParseKind("charge back")
	assert.Error(t, err)
}

func TestKind_RequiresAmount(t *testing.T) {
	assert.True(t, domain.KindDeposit.RequiresAmount())
	assert.True(t, domain.KindWithdrawal.RequiresAmount())
	assert.False(t, domain.KindDispute.RequiresAmount())
	assert.False(t, domain.KindResolve.RequiresAmount())
	assert.False(t, domain.KindChargeback.RequiresAmount())
}

func TestTransaction_Variants(t *testing.T) {
	data := domain.TransactionData{Client: 7, Tx: 42}
	amount, err := domain.ParseMoney("1.5")
	require.NoError(t, err)

	testCases := []struct {
		tx       domain.Transaction
		wantKind domain.Kind
		wantDesc string
	}{
		{
			tx:       domain.Deposit{TransactionData: data, Amount: amount},
			wantKind: domain.KindDeposit,
			wantDesc: "deposit{client: 7, tx: 42, amount: 1.5000}",
		},
		{
			tx:       domain.Withdrawal{TransactionData: data, Amount: amount},
			wantKind: domain.KindWithdrawal,
			wantDesc: "withdrawal{client: 7, tx: 42, amount: 1.5000}",
		},
		{
			tx:       domain.Dispute{TransactionData: data},
			wantKind: domain.KindDispute,
			wantDesc: "dispute{client: 7, tx: 42}",
		},
		{
			tx:       domain.Resolve{TransactionData: data},
			wantKind: domain.KindResolve,
			wantDesc: "resolve{client: 7, tx: 42}",
		},
		{
			tx:       domain.Chargeback{TransactionData: data},
			wantKind: domain.KindChargeback,
			wantDesc: "chargeback{client: 7, tx: 42}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.wantKind.String(), func(t *testing.T) {
			assert.Equal(t, tc.wantKind, tc.tx.Kind())
			assert.Equal(t, data, tc.tx.Data())
			assert.Equal(t, tc.wantDesc, domain.Describe(tc.tx))
		})
	}
}

func TestTransactionState_String(t *testing.T) {
	assert.Equal(t, "Valid", domain.Valid.String())
	assert.Equal(t, "Disputed", domain.Disputed.String())
	assert.Equal(t, "ChargedBack", domain.ChargedBack.String())
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
