package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/utxoledger/domain/ledger/model"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/txsigning"
)

// SchemeFlags holds the signature scheme configuration, that is which scheme
// owners and signatures are encoded with.
type SchemeFlags struct {
	Scheme string `long:"scheme" description:"Signature scheme of owners and signatures {schnorr, ed25519}" default:"schnorr"`

	ActiveScheme txsigning.Scheme
}

// ResolveScheme parses the scheme command line argument and sets ActiveScheme
// accordingly.
func (schemeFlags *SchemeFlags) ResolveScheme(parser *flags.Parser) error {
	scheme, err := txsigning.ParseScheme(schemeFlags.Scheme)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	schemeFlags.ActiveScheme = scheme
	return nil
}

// Verifier returns the signature verifier of the active scheme.
func (schemeFlags *SchemeFlags) Verifier() (model.SignatureVerifier, error) {
	return txsigning.NewVerifier(schemeFlags.ActiveScheme)
}
