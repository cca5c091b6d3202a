package externalapi

// UTXO is an unspent output of a previous transaction, as held by a UTXO pool.
type UTXO struct {
	ID          string `json:"id"`
	TxID        string `json:"txId"`
	OutputIndex uint32 `json:"outputIndex"`
	Amount      uint64 `json:"amount"`
	Owner       string `json:"owner"`
}

// UTXOID returns the key under which the UTXO is looked up.
func (utxo *UTXO) UTXOID() UTXOID {
	return NewUTXOID(utxo.TxID, utxo.OutputIndex)
}

// Clone returns a copy of the UTXO.
func (utxo *UTXO) Clone() *UTXO {
	if utxo == nil {
		return nil
	}
	clone := *utxo
	return &clone
}

// Equal returns whether utxo equals to other.
func (utxo *UTXO) Equal(other *UTXO) bool {
	if utxo == nil || other == nil {
		return utxo == other
	}
	return *utxo == *other
}
