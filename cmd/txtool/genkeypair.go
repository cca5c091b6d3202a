package main

import (
	"encoding/hex"
	"io"
	"strings"
	"syscall"

	"github.com/kaspanet/utxoledger/domain/ledger/utils/txsigning"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/term"
)

// mnemonicKeySize is the number of seed bytes used as the private key.
const mnemonicKeySize = 32

type keyPairOutput struct {
	Scheme     txsigning.Scheme `json:"scheme"`
	Mnemonic   string           `json:"mnemonic,omitempty"`
	PrivateKey string           `json:"privateKey"`
	Owner      string           `json:"owner"`
}

func genKeyPair(conf *genKeyPairConfig, out io.Writer) error {
	var signer txsigning.Signer
	var mnemonic string
	var err error

	switch {
	case conf.Mnemonic:
		mnemonic, err = createMnemonic()
		if err != nil {
			return err
		}
		signer, err = signerFromMnemonic(conf.ActiveScheme, mnemonic, readPassphrase())
	case conf.FromMnemonic != "":
		signer, err = signerFromMnemonic(conf.ActiveScheme, conf.FromMnemonic, readPassphrase())
	default:
		signer, err = txsigning.GenerateSigner(conf.ActiveScheme)
	}
	if err != nil {
		return err
	}

	return printJSON(out, &keyPairOutput{
		Scheme:     signer.Scheme(),
		Mnemonic:   mnemonic,
		PrivateKey: signer.PrivateKey(),
		Owner:      signer.Owner(),
	})
}

func createMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.WithStack(err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return mnemonic, nil
}

// signerFromMnemonic derives a private key from the BIP-39 seed of mnemonic
// and passphrase. The same mnemonic and passphrase always give the same key.
func signerFromMnemonic(scheme txsigning.Scheme, mnemonic string, passphrase string) (txsigning.Signer, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	return txsigning.NewSigner(scheme, hex.EncodeToString(seed[:mnemonicKeySize]))
}

// readPassphrase asks for the optional mnemonic passphrase. Without a
// terminal on stdin the passphrase is empty.
func readPassphrase() string {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return ""
	}
	return string(getPassword("Enter an optional mnemonic passphrase:"))
}
