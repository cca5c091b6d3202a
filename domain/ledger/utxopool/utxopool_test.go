package utxopool

import (
	"strings"
	"testing"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
	"github.com/pkg/errors"
)

func utxo(id, txID string, index uint32, amount uint64, owner string) *externalapi.UTXO {
	return &externalapi.UTXO{ID: id, TxID: txID, OutputIndex: index, Amount: amount, Owner: owner}
}

// staticValidator returns the same verdict for every transaction.
type staticValidator struct {
	result *validationerrors.ValidationResult
	calls  int
}

func (v *staticValidator) ValidateTransaction(*externalapi.Transaction) *validationerrors.ValidationResult {
	v.calls++
	return v.result
}

func TestAddGetRemove(t *testing.T) {
	pool := New()
	err := pool.Add(utxo("u1", "tx1", 0, 100, "Alice"))
	if err != nil {
		t.Fatalf("TestAddGetRemove: Add unexpectedly failed: %s", err)
	}

	err = pool.Add(utxo("u1-again", "tx1", 0, 5, "Bob"))
	if !errors.Is(err, ErrUTXOAlreadyExists) {
		t.Fatalf("TestAddGetRemove: expected ErrUTXOAlreadyExists, got %v", err)
	}

	got, ok := pool.GetUTXO("tx1", 0)
	if !ok {
		t.Fatalf("TestAddGetRemove: added UTXO not found")
	}
	if got.ID != "u1" || got.Amount != 100 || got.Owner != "Alice" {
		t.Fatalf("TestAddGetRemove: unexpected UTXO %+v", got)
	}

	got.Amount = 1
	again, _ := pool.GetUTXO("tx1", 0)
	if again.Amount != 100 {
		t.Fatalf("TestAddGetRemove: modifying a returned UTXO changed the pool")
	}

	if _, ok := pool.GetUTXO("tx1", 1); ok {
		t.Fatalf("TestAddGetRemove: found a UTXO at an index that was never added")
	}

	if !pool.Remove("tx1", 0) {
		t.Fatalf("TestAddGetRemove: Remove of an existing UTXO returned false")
	}
	if pool.Remove("tx1", 0) {
		t.Fatalf("TestAddGetRemove: second Remove returned true")
	}
	if pool.Len() != 0 {
		t.Fatalf("TestAddGetRemove: expected an empty pool, got %d UTXOs", pool.Len())
	}
}

func TestUTXOsByOwnerAndBalance(t *testing.T) {
	pool, err := NewFromUTXOs([]*externalapi.UTXO{
		utxo("u3", "txB", 0, 30, "Alice"),
		utxo("u1", "txA", 1, 10, "Alice"),
		utxo("u2", "txA", 0, 20, "Bob"),
		utxo("u4", "txA", 2, 40, "Alice"),
	})
	if err != nil {
		t.Fatalf("TestUTXOsByOwnerAndBalance: NewFromUTXOs unexpectedly failed: %s", err)
	}

	owned := pool.UTXOsByOwner("Alice")
	expectedIDs := []string{"u1", "u4", "u3"}
	if len(owned) != len(expectedIDs) {
		t.Fatalf("TestUTXOsByOwnerAndBalance: expected %d UTXOs, got %d", len(expectedIDs), len(owned))
	}
	for i, id := range expectedIDs {
		if owned[i].ID != id {
			t.Fatalf("TestUTXOsByOwnerAndBalance: expected UTXO %d to be %s, got %s", i, id, owned[i].ID)
		}
	}

	balance, err := pool.Balance("Alice")
	if err != nil {
		t.Fatalf("TestUTXOsByOwnerAndBalance: Balance unexpectedly failed: %s", err)
	}
	if balance != 80 {
		t.Fatalf("TestUTXOsByOwnerAndBalance: expected balance 80, got %d", balance)
	}
	balance, _ = pool.Balance("Carol")
	if balance != 0 {
		t.Fatalf("TestUTXOsByOwnerAndBalance: expected balance 0 for an unknown owner, got %d", balance)
	}

	if len(pool.UTXOs()) != 4 {
		t.Fatalf("TestUTXOsByOwnerAndBalance: expected 4 UTXOs, got %d", len(pool.UTXOs()))
	}

	_, err = NewFromUTXOs([]*externalapi.UTXO{utxo("a", "tx", 0, 1, "A"), utxo("b", "tx", 0, 1, "B")})
	if err == nil {
		t.Fatalf("TestUTXOsByOwnerAndBalance: NewFromUTXOs accepted two UTXOs at the same outpoint")
	}
}

func TestBalanceOverflow(t *testing.T) {
	pool, err := NewFromUTXOs([]*externalapi.UTXO{
		utxo("u1", "tx", 0, ^uint64(0), "Alice"),
		utxo("u2", "tx", 1, 1, "Alice"),
	})
	if err != nil {
		t.Fatalf("TestBalanceOverflow: NewFromUTXOs unexpectedly failed: %s", err)
	}
	if _, err := pool.Balance("Alice"); err == nil {
		t.Fatalf("TestBalanceOverflow: expected an overflow error")
	}
}

func TestCommitment(t *testing.T) {
	a := utxo("u1", "tx1", 0, 100, "Alice")
	b := utxo("u2", "tx2", 3, 7, "Bob")

	first, _ := NewFromUTXOs([]*externalapi.UTXO{a, b})
	second, _ := NewFromUTXOs([]*externalapi.UTXO{b, a})

	firstCommitment, err := first.Commitment()
	if err != nil {
		t.Fatalf("TestCommitment: Commitment unexpectedly failed: %s", err)
	}
	secondCommitment, err := second.Commitment()
	if err != nil {
		t.Fatalf("TestCommitment: Commitment unexpectedly failed: %s", err)
	}
	if firstCommitment != secondCommitment {
		t.Fatalf("TestCommitment: commitment depends on insertion order: %s != %s", firstCommitment, secondCommitment)
	}
	if len(firstCommitment) != 64 {
		t.Fatalf("TestCommitment: expected a 32-byte hex commitment, got %q", firstCommitment)
	}

	empty, _ := New().Commitment()
	if empty == firstCommitment {
		t.Fatalf("TestCommitment: empty pool has the same commitment as a populated one")
	}

	second.Remove("tx2", 3)
	removedCommitment, _ := second.Commitment()
	single, _ := NewFromUTXOs([]*externalapi.UTXO{a})
	singleCommitment, _ := single.Commitment()
	if removedCommitment != singleCommitment {
		t.Fatalf("TestCommitment: commitment after Remove differs from a pool built without the UTXO")
	}

	_ = second.Add(utxo("u2", "tx2", 3, 8, "Bob"))
	changedCommitment, _ := second.Commitment()
	if changedCommitment == firstCommitment {
		t.Fatalf("TestCommitment: changing an amount did not change the commitment")
	}
}

func TestApplyTransaction(t *testing.T) {
	pool, _ := NewFromUTXOs([]*externalapi.UTXO{
		utxo("u1", "prev", 0, 60, "Alice"),
		utxo("u2", "prev", 1, 40, "Alice"),
	})
	tx := &externalapi.Transaction{
		ID: "tx1",
		Inputs: []*externalapi.TransactionInput{
			{UTXOID: externalapi.NewUTXOID("prev", 0), Owner: "Alice"},
			{UTXOID: externalapi.NewUTXOID("prev", 1), Owner: "Alice"},
		},
		Outputs: []*externalapi.TransactionOutput{
			{Amount: 70, Recipient: "Bob"},
			{Amount: 30, Recipient: "Alice"},
		},
	}

	validator := &staticValidator{result: validationerrors.NewValidationResult(nil)}
	result, err := pool.ApplyTransaction(tx, validator)
	if err != nil {
		t.Fatalf("TestApplyTransaction: ApplyTransaction unexpectedly failed: %s", err)
	}
	if !result.Valid || validator.calls != 1 {
		t.Fatalf("TestApplyTransaction: expected one valid validation, got %+v after %d calls", result, validator.calls)
	}

	if pool.Len() != 2 {
		t.Fatalf("TestApplyTransaction: expected 2 UTXOs, got %d", pool.Len())
	}
	if _, ok := pool.GetUTXO("prev", 0); ok {
		t.Fatalf("TestApplyTransaction: spent UTXO is still in the pool")
	}
	created, ok := pool.GetUTXO("tx1", 0)
	if !ok {
		t.Fatalf("TestApplyTransaction: output 0 was not added")
	}
	if created.ID != "tx1:0" || created.Amount != 70 || created.Owner != "Bob" {
		t.Fatalf("TestApplyTransaction: unexpected created UTXO %+v", created)
	}

	// Applying the same transaction again finds its inputs already spent.
	_, err = pool.ApplyTransaction(tx, validator)
	if err == nil {
		t.Fatalf("TestApplyTransaction: reapplying a transaction unexpectedly succeeded")
	}
	if pool.Len() != 2 {
		t.Fatalf("TestApplyTransaction: failed apply modified the pool")
	}
}

func TestApplyInvalidTransaction(t *testing.T) {
	pool, _ := NewFromUTXOs([]*externalapi.UTXO{utxo("u1", "prev", 0, 60, "Alice")})
	tx := &externalapi.Transaction{
		ID:      "tx1",
		Inputs:  []*externalapi.TransactionInput{{UTXOID: externalapi.NewUTXOID("prev", 0), Owner: "Alice"}},
		Outputs: []*externalapi.TransactionOutput{{Amount: 61, Recipient: "Bob"}},
	}
	validator := &staticValidator{result: validationerrors.NewValidationResult([]*validationerrors.ValidationError{
		validationerrors.New(validationerrors.KindAmountMismatch, "in 60, out 61"),
	})}

	result, err := pool.ApplyTransaction(tx, validator)
	var invalidErr *validationerrors.ErrInvalidTransaction
	if !errors.As(err, &invalidErr) {
		t.Fatalf("TestApplyInvalidTransaction: expected ErrInvalidTransaction, got %v", err)
	}
	if result.Valid || !result.HasKind(validationerrors.KindAmountMismatch) {
		t.Fatalf("TestApplyInvalidTransaction: unexpected result %+v", result)
	}
	if _, ok := pool.GetUTXO("prev", 0); !ok {
		t.Fatalf("TestApplyInvalidTransaction: the input of an invalid transaction was spent")
	}
	if pool.Len() != 1 {
		t.Fatalf("TestApplyInvalidTransaction: expected 1 UTXO, got %d", pool.Len())
	}
}

func TestCommitmentBeyondTransactionLimits(t *testing.T) {
	pool, err := NewFromUTXOs([]*externalapi.UTXO{utxo("u1", "prev", 256, 10, "Alice")})
	if err != nil {
		t.Fatalf("TestCommitmentBeyondTransactionLimits: NewFromUTXOs unexpectedly failed: %s", err)
	}
	if _, err := pool.Commitment(); err != nil {
		t.Fatalf("TestCommitmentBeyondTransactionLimits: Commitment failed for output index 256: %s", err)
	}

	longRecipient := strings.Repeat("r", 300)
	tx := &externalapi.Transaction{
		ID:      "tx1",
		Inputs:  []*externalapi.TransactionInput{{UTXOID: externalapi.NewUTXOID("prev", 256), Owner: "Alice"}},
		Outputs: []*externalapi.TransactionOutput{{Amount: 10, Recipient: longRecipient}},
	}
	validator := &staticValidator{result: validationerrors.NewValidationResult(nil)}
	_, err = pool.ApplyTransaction(tx, validator)
	if err != nil {
		t.Fatalf("TestCommitmentBeyondTransactionLimits: ApplyTransaction unexpectedly failed: %s", err)
	}

	commitment, err := pool.Commitment()
	if err != nil {
		t.Fatalf("TestCommitmentBeyondTransactionLimits: Commitment failed for a %d byte owner: %s",
			len(longRecipient), err)
	}
	single, _ := NewFromUTXOs([]*externalapi.UTXO{utxo("tx1:0", "tx1", 0, 10, longRecipient)})
	expected, _ := single.Commitment()
	if commitment != expected {
		t.Fatalf("TestCommitmentBeyondTransactionLimits: expected commitment %s, got %s", expected, commitment)
	}
}

func TestApplyTransactionWithNilElements(t *testing.T) {
	pool, _ := NewFromUTXOs([]*externalapi.UTXO{utxo("u1", "prev", 0, 60, "Alice")})
	validator := &staticValidator{result: validationerrors.NewValidationResult(nil)}

	transactions := []*externalapi.Transaction{
		{
			ID:      "nil-input",
			Inputs:  []*externalapi.TransactionInput{{UTXOID: externalapi.NewUTXOID("prev", 0), Owner: "Alice"}, nil},
			Outputs: []*externalapi.TransactionOutput{{Amount: 60, Recipient: "Bob"}},
		},
		{
			ID:      "nil-output",
			Inputs:  []*externalapi.TransactionInput{{UTXOID: externalapi.NewUTXOID("prev", 0), Owner: "Alice"}},
			Outputs: []*externalapi.TransactionOutput{{Amount: 60, Recipient: "Bob"}, nil},
		},
	}
	for _, tx := range transactions {
		_, err := pool.ApplyTransaction(tx, validator)
		if err == nil {
			t.Fatalf("TestApplyTransactionWithNilElements: %s: expected an error", tx.ID)
		}
		if _, ok := pool.GetUTXO("prev", 0); !ok || pool.Len() != 1 {
			t.Fatalf("TestApplyTransactionWithNilElements: %s: failed apply modified the pool", tx.ID)
		}
	}
}
