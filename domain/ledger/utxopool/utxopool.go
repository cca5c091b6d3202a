package utxopool

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/kaspanet/go-muhash"
	"github.com/kaspanet/utxoledger/domain/ledger/model"
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/txserialization"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
	"github.com/pkg/errors"
)

// ErrUTXOAlreadyExists indicates a UTXO with the same transaction id and
// output index is already in the pool.
var ErrUTXOAlreadyExists = errors.New("UTXO already exists")

// UTXOPool is an in-memory set of unspent outputs keyed by transaction id
// and output index. Every method is an atomic operation on the set.
type UTXOPool struct {
	lock  sync.RWMutex
	utxos map[externalapi.UTXOID]*externalapi.UTXO
}

// New returns an empty UTXOPool.
func New() *UTXOPool {
	return &UTXOPool{utxos: make(map[externalapi.UTXOID]*externalapi.UTXO)}
}

// NewFromUTXOs returns a pool holding the given UTXOs.
func NewFromUTXOs(utxos []*externalapi.UTXO) (*UTXOPool, error) {
	pool := New()
	for _, utxo := range utxos {
		err := pool.Add(utxo)
		if err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// OutputUTXOID returns the ID given to the UTXO created by output index of
// transaction txID.
func OutputUTXOID(txID string, index uint32) string {
	return fmt.Sprintf("%s:%d", txID, index)
}

// Add inserts a copy of utxo.
func (p *UTXOPool) Add(utxo *externalapi.UTXO) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.add(utxo)
}

func (p *UTXOPool) add(utxo *externalapi.UTXO) error {
	key := utxo.UTXOID()
	if _, exists := p.utxos[key]; exists {
		return errors.Wrapf(ErrUTXOAlreadyExists, "cannot add UTXO %s", key)
	}
	p.utxos[key] = utxo.Clone()
	log.Tracef("Added UTXO %s (%s) of %d to %s", utxo.ID, key, utxo.Amount, utxo.Owner)
	return nil
}

// Remove deletes the UTXO at txID:outputIndex and returns whether it existed.
func (p *UTXOPool) Remove(txID string, outputIndex uint32) bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	key := externalapi.NewUTXOID(txID, outputIndex)
	if _, exists := p.utxos[key]; !exists {
		return false
	}
	delete(p.utxos, key)
	log.Tracef("Removed UTXO %s", key)
	return true
}

// GetUTXO returns a copy of the UTXO at txID:outputIndex.
func (p *UTXOPool) GetUTXO(txID string, outputIndex uint32) (*externalapi.UTXO, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	utxo, ok := p.utxos[externalapi.NewUTXOID(txID, outputIndex)]
	if !ok {
		return nil, false
	}
	return utxo.Clone(), true
}

// Len returns the number of UTXOs in the pool.
func (p *UTXOPool) Len() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.utxos)
}

// UTXOs returns copies of all UTXOs ordered by transaction id and output
// index.
func (p *UTXOPool) UTXOs() []*externalapi.UTXO {
	return p.filter(func(*externalapi.UTXO) bool { return true })
}

// UTXOsByOwner returns copies of the UTXOs owned by owner, ordered by
// transaction id and output index.
func (p *UTXOPool) UTXOsByOwner(owner string) []*externalapi.UTXO {
	return p.filter(func(utxo *externalapi.UTXO) bool { return utxo.Owner == owner })
}

func (p *UTXOPool) filter(accept func(*externalapi.UTXO) bool) []*externalapi.UTXO {
	p.lock.RLock()
	defer p.lock.RUnlock()
	var utxos []*externalapi.UTXO
	for _, utxo := range p.utxos {
		if accept(utxo) {
			utxos = append(utxos, utxo.Clone())
		}
	}
	sort.Slice(utxos, func(i, j int) bool {
		if utxos[i].TxID != utxos[j].TxID {
			return utxos[i].TxID < utxos[j].TxID
		}
		return utxos[i].OutputIndex < utxos[j].OutputIndex
	})
	return utxos
}

// Balance returns the total amount owned by owner.
func (p *UTXOPool) Balance(owner string) (uint64, error) {
	var balance uint64
	for _, utxo := range p.UTXOsByOwner(owner) {
		newBalance := balance + utxo.Amount
		if newBalance < balance {
			return 0, errors.Errorf("balance of %s overflows", owner)
		}
		balance = newBalance
	}
	return balance, nil
}

// Commitment returns the hex encoded MuHash of every UTXO in the pool. It
// depends only on the set of UTXOs, not on the order they were added in.
func (p *UTXOPool) Commitment() (string, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	multiset := muhash.NewMuHash()
	for _, utxo := range p.utxos {
		serializedUTXO, err := txserialization.EncodeUTXO(utxo)
		if err != nil {
			return "", err
		}
		multiset.Add(serializedUTXO)
	}
	hash := multiset.Finalize()
	return hex.EncodeToString(hash[:]), nil
}

// ApplyTransaction validates tx against the pool and, if it is valid, spends
// its inputs and adds its outputs as new UTXOs with IDs from OutputUTXOID.
// The validation result is returned in both cases; an invalid transaction
// also yields an error wrapping validationerrors.ErrInvalidTransaction.
func (p *UTXOPool) ApplyTransaction(tx *externalapi.Transaction,
	validator model.TransactionValidator) (*validationerrors.ValidationResult, error) {

	result := validator.ValidateTransaction(tx)
	if !result.Valid {
		return result, result.Err()
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	// The pool may have changed since validation released it.
	for i, input := range tx.Inputs {
		if input == nil {
			return result, errors.Errorf("transaction %s has a nil input at index %d", tx.ID, i)
		}
		if _, exists := p.utxos[input.UTXOID]; !exists {
			return result, errors.Errorf("UTXO %s was spent while transaction %s was being validated",
				input.UTXOID, tx.ID)
		}
	}
	newUTXOs := make([]*externalapi.UTXO, len(tx.Outputs))
	for i, output := range tx.Outputs {
		if output == nil {
			return result, errors.Errorf("transaction %s has a nil output at index %d", tx.ID, i)
		}
		newUTXOs[i] = &externalapi.UTXO{
			ID:          OutputUTXOID(tx.ID, uint32(i)),
			TxID:        tx.ID,
			OutputIndex: uint32(i),
			Amount:      uint64(output.Amount),
			Owner:       output.Recipient,
		}
		if _, exists := p.utxos[newUTXOs[i].UTXOID()]; exists {
			return result, errors.Wrapf(ErrUTXOAlreadyExists, "transaction %s output %d", tx.ID, i)
		}
	}

	for _, input := range tx.Inputs {
		delete(p.utxos, input.UTXOID)
	}
	for _, utxo := range newUTXOs {
		err := p.add(utxo)
		if err != nil {
			return result, err
		}
	}
	log.Debugf("Applied transaction %s: spent %d UTXOs, created %d", tx.ID, len(tx.Inputs), len(tx.Outputs))
	return result, nil
}
