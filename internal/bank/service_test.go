package bank

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/store"
)

var fixedTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return NewService(st, WithClock(fixedClock)), st
}

func mustGet(t *testing.T, st store.Store, number string) *model.Account {
	t.Helper()
	a, ok := st.FindByNumber(number)
	require.True(t, ok, "account %s should exist", number)
	return a
}

var (
	ana = model.Holder{Name: "Ana", TaxID: "111.111.111-11"}
	bia = model.Holder{Name: "Bia", TaxID: "222.222.222-22"}
)

func TestOpen(t *testing.T) {
	svc, st := newTestService(t)

	a, err := svc.OpenChecking(ana, "0001", "12345-6")
	require.NoError(t, err)
	assert.Equal(t, model.KindTagChecking, a.Kind.Tag)
	assert.True(t, a.Balance().IsZero())

	s, err := svc.OpenSavings(bia, "0002", "54321-0")
	require.NoError(t, err)
	assert.Equal(t, model.KindTagSavings, s.Kind.Tag)
	assert.Equal(t, "0002", s.Branch)

	assert.Equal(t, 2, st.Len())
	assert.Equal(t, "Bia", mustGet(t, st, "54321-0").Holder.Name)
}

func TestOpen_Duplicate(t *testing.T) {
	svc, st := newTestService(t)

	_, err := svc.OpenChecking(ana, "0001", "1")
	require.NoError(t, err)

	_, err = svc.OpenSavings(bia, "0009", "1")
	require.ErrorIs(t, err, ErrDuplicateAccount)

	assert.Equal(t, 1, st.Len())
	got := mustGet(t, st, "1")
	assert.Equal(t, "Ana", got.Holder.Name)
	assert.Equal(t, model.KindTagChecking, got.Kind.Tag)
}

func TestDeposit(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenSavings(ana, "0001", "1")
	require.NoError(t, err)

	a, err := svc.Deposit("1", dec("50.25"))
	require.NoError(t, err)
	assert.Equal(t, "50.25", a.Balance().StringFixed(2))

	got := mustGet(t, st, "1")
	assert.Equal(t, "50.25", got.Balance().StringFixed(2))
	h := got.History()
	require.Len(t, h, 1)
	assert.Equal(t, model.KindDeposit, h[0].Kind)
	assert.True(t, h[0].Amount.Equal(dec("50.25")))
	assert.Equal(t, fixedTime, h[0].Timestamp)
	assert.Equal(t, "1/0001", h[0].Reference)
	assert.Equal(t, "Deposit to account", h[0].Note)
}

func TestDeposit_NonPositiveIsNoop(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenSavings(ana, "0001", "1")
	require.NoError(t, err)

	for _, amount := range []string{"0", "-10"} {
		_, err := svc.Deposit("1", dec(amount))
		require.NoError(t, err)
	}

	got := mustGet(t, st, "1")
	assert.True(t, got.Balance().IsZero())
	assert.Equal(t, 0, got.Len())
}

func TestDeposit_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Deposit("nope", dec("10"))
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestWithdraw_CheckingOverdraft(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "1")
	require.NoError(t, err)

	_, err = svc.Withdraw("1", dec("150"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 0, mustGet(t, st, "1").Len(), "failed withdrawal must not be recorded")

	a, err := svc.Withdraw("1", dec("80"))
	require.NoError(t, err)
	assert.Equal(t, "-80.00", a.Balance().StringFixed(2))

	got := mustGet(t, st, "1")
	assert.Equal(t, "-80.00", got.Balance().StringFixed(2))
	require.Len(t, got.History(), 1)
	assert.Equal(t, model.KindWithdrawal, got.History()[0].Kind)
}

func TestWithdraw_Savings(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenSavings(ana, "0001", "1")
	require.NoError(t, err)

	_, err = svc.Withdraw("1", dec("50"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = svc.Deposit("1", dec("50"))
	require.NoError(t, err)
	a, err := svc.Withdraw("1", dec("50"))
	require.NoError(t, err)
	assert.True(t, a.Balance().IsZero())

	got := mustGet(t, st, "1")
	assert.Equal(t, 2, got.Len())
}

func TestWithdraw_NonPositive(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "1")
	require.NoError(t, err)

	_, err = svc.Withdraw("1", dec("0"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 0, mustGet(t, st, "1").Len())
}

func TestWithdraw_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Withdraw("nope", dec("10"))
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBalanceMatchesHistory(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "1")
	require.NoError(t, err)

	ops := []struct {
		deposit bool
		amount  string
	}{
		{true, "20"}, {false, "50"}, {false, "80"}, {true, "5.5"}, {false, "75.5"}, {false, "0.01"},
	}
	succeeded := 0
	for _, op := range ops {
		if op.deposit {
			_, err = svc.Deposit("1", dec(op.amount))
		} else {
			_, err = svc.Withdraw("1", dec(op.amount))
		}
		if err == nil {
			succeeded++
		}
	}

	got := mustGet(t, st, "1")
	assert.Equal(t, succeeded, got.Len())

	sum := decimal.Zero
	for _, rec := range got.History() {
		switch rec.Kind {
		case model.KindDeposit:
			sum = sum.Add(rec.Amount)
		case model.KindWithdrawal:
			sum = sum.Sub(rec.Amount)
		}
	}
	assert.True(t, sum.Equal(got.Balance()), "balance %s != history sum %s", got.Balance(), sum)
	assert.True(t, got.Balance().GreaterThanOrEqual(dec("-100")))
	assert.Equal(t, "-100.00", got.Balance().StringFixed(2))
}

func TestTransfer(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.OpenSavings(bia, "0001", "B")
	require.NoError(t, err)
	_, err = svc.Deposit("A", dec("50"))
	require.NoError(t, err)

	out, err := svc.Transfer("A", "B", dec("100"))
	require.NoError(t, err)
	assert.True(t, out.Completed())
	assert.Nil(t, out.Reason)
	assert.Equal(t, "-50.00", out.From.Balance().StringFixed(2))
	assert.Equal(t, "100.00", out.To.Balance().StringFixed(2))

	a := mustGet(t, st, "A")
	b := mustGet(t, st, "B")
	assert.Equal(t, "-50.00", a.Balance().StringFixed(2))
	assert.Equal(t, "100.00", b.Balance().StringFixed(2))

	ah := a.History()
	require.Len(t, ah, 2)
	assert.Equal(t, model.KindTransferSent, ah[1].Kind)
	assert.Equal(t, "To: Bia", ah[1].Note)

	bh := b.History()
	require.Len(t, bh, 1)
	assert.Equal(t, model.KindTransferReceived, bh[0].Kind)
	assert.Equal(t, "From: Ana", bh[0].Note)
	assert.True(t, bh[0].Amount.Equal(dec("100")))
}

func TestTransfer_InsufficientFundsIsRejected(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.OpenSavings(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.OpenChecking(bia, "0001", "B")
	require.NoError(t, err)
	_, err = svc.Deposit("A", dec("10"))
	require.NoError(t, err)

	out, err := svc.Transfer("A", "B", dec("10.01"))
	require.NoError(t, err, "insufficient funds is an outcome, not an error")
	assert.Equal(t, StatusRejected, out.Status)
	assert.False(t, out.Completed())
	assert.ErrorIs(t, out.Reason, ErrInsufficientFunds)

	a := mustGet(t, st, "A")
	b := mustGet(t, st, "B")
	assert.Equal(t, "10.00", a.Balance().StringFixed(2))
	assert.Equal(t, 1, a.Len())
	assert.True(t, b.Balance().IsZero())
	assert.Equal(t, 0, b.Len())
}

func TestTransfer_NonPositiveIsRejected(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.OpenChecking(bia, "0001", "B")
	require.NoError(t, err)

	out, err := svc.Transfer("A", "B", dec("0"))
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
}

func TestTransfer_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)

	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"missing source", "X", "A", ErrAccountNotFound},
		{"missing destination", "A", "X", ErrAccountNotFound},
		{"self transfer", "A", "A", ErrSelfTransfer},
		{"missing self", "X", "X", ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transfer(tt.from, tt.to, dec("1"))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTransfer_SavesSourceThenDestination(t *testing.T) {
	rs := &recordingStore{Memory: store.NewMemory()}
	svc := NewService(rs, WithClock(fixedClock))
	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.OpenChecking(bia, "0001", "B")
	require.NoError(t, err)
	rs.saves = nil

	_, err = svc.Transfer("B", "A", dec("10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, rs.saves)
}

func TestStatement(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.Deposit("A", dec("40"))
	require.NoError(t, err)
	_, err = svc.Withdraw("A", dec("15"))
	require.NoError(t, err)

	st, err := svc.Statement("A")
	require.NoError(t, err)
	assert.Equal(t, "Ana", st.HolderName)
	assert.Equal(t, "0001", st.Branch)
	assert.Equal(t, "25.00", st.Balance.StringFixed(2))
	require.Len(t, st.Entries, 2)
	assert.Equal(t, model.KindDeposit, st.Entries[0].Kind)
	assert.Equal(t, model.KindWithdrawal, st.Entries[1].Kind)
	assert.Equal(t, "A/0002", st.Entries[1].Reference)

	_, err = svc.Statement("nope")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccounts(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Empty(t, svc.Accounts())

	_, err := svc.OpenChecking(ana, "0001", "A")
	require.NoError(t, err)
	_, err = svc.OpenSavings(bia, "0001", "B")
	require.NoError(t, err)

	all := svc.Accounts()
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Number)
}

// recordingStore wraps a memory store and remembers the order of saves.
type recordingStore struct {
	*store.Memory
	saves []string
}

func (r *recordingStore) Save(a *model.Account) {
	r.saves = append(r.saves, a.Number)
	r.Memory.Save(a)
}
