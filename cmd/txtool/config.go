package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/utxoledger/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	encodeSubCmd     = "encode"
	decodeSubCmd     = "decode"
	validateSubCmd   = "validate"
	signSubCmd       = "sign"
	genKeyPairSubCmd = "genkeypair"
)

type configFlags struct {
	config.LogFlags
}

type encodeConfig struct {
	TransactionFile string `long:"transaction-file" short:"f" description:"JSON file holding a transaction or an array of transactions" required:"true"`
	config.LogFlags
}

type decodeConfig struct {
	Transaction string `long:"transaction" short:"t" description:"The encoded transactions (in hex, separated by '_')" required:"true"`
	Dump        bool   `long:"dump" description:"Print a Go dump of the decoded transactions instead of JSON"`
	config.LogFlags
}

type validateConfig struct {
	TransactionFile string `long:"transaction-file" short:"f" description:"JSON file holding a transaction or an array of transactions" required:"true"`
	UTXOFile        string `long:"utxo-file" short:"u" description:"JSON file holding the array of UTXOs in the pool" required:"true"`
	Apply           bool   `long:"apply" description:"Apply every valid transaction to the pool before validating the next one, and print the resulting pool"`
	config.LogFlags
	config.SchemeFlags
}

type signConfig struct {
	TransactionFile string `long:"transaction-file" short:"f" description:"JSON file holding a transaction or an array of transactions" required:"true"`
	PrivateKey      string `long:"private-key" short:"k" description:"The private key of the signer (encoded in hex)" required:"true"`
	config.LogFlags
	config.SchemeFlags
}

type genKeyPairConfig struct {
	Mnemonic     bool   `long:"mnemonic" description:"Derive the key from a newly generated BIP-39 mnemonic"`
	FromMnemonic string `long:"from-mnemonic" description:"Derive the key from the given BIP-39 mnemonic"`
	config.LogFlags
	config.SchemeFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	encodeConf := &encodeConfig{}
	parser.AddCommand(encodeSubCmd, "Encodes transactions to the binary format",
		"Encodes the transactions of a JSON file to the binary format and prints them in hex", encodeConf)

	decodeConf := &decodeConfig{}
	parser.AddCommand(decodeSubCmd, "Decodes transactions from the binary format",
		"Decodes hex encoded transactions and prints them as JSON", decodeConf)

	validateConf := &validateConfig{}
	parser.AddCommand(validateSubCmd, "Validates transactions against a UTXO pool",
		"Validates the transactions of a JSON file against the UTXOs of another JSON file, "+
			"prints the validation results and exits with status 1 if any transaction is invalid", validateConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Signs the inputs owned by the given key",
		"Signs every input of the given transactions that is owned by the given private key", signConf)

	genKeyPairConf := &genKeyPairConfig{}
	parser.AddCommand(genKeyPairSubCmd, "Generates a key pair",
		"Generates a private key and prints it along with its owner identity", genKeyPairConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case encodeSubCmd:
		resolveLogFlags(&encodeConf.LogFlags, &cfg.LogFlags)
		config = encodeConf
	case decodeSubCmd:
		resolveLogFlags(&decodeConf.LogFlags, &cfg.LogFlags)
		config = decodeConf
	case validateSubCmd:
		resolveLogFlags(&validateConf.LogFlags, &cfg.LogFlags)
		resolveSchemeFlags(parser, &validateConf.SchemeFlags)
		config = validateConf
	case signSubCmd:
		resolveLogFlags(&signConf.LogFlags, &cfg.LogFlags)
		resolveSchemeFlags(parser, &signConf.SchemeFlags)
		config = signConf
	case genKeyPairSubCmd:
		resolveLogFlags(&genKeyPairConf.LogFlags, &cfg.LogFlags)
		resolveSchemeFlags(parser, &genKeyPairConf.SchemeFlags)
		if genKeyPairConf.Mnemonic && genKeyPairConf.FromMnemonic != "" {
			printErrorAndExit(errors.New("--mnemonic and --from-mnemonic cannot be used together"))
		}
		config = genKeyPairConf
	}

	return parser.Command.Active.Name, config
}

// resolveLogFlags merges the global log flags into the sub-command's and
// starts the logging backend.
func resolveLogFlags(dst, src *config.LogFlags) {
	combineLogFlags(dst, src)
	err := dst.ResolveLog()
	if err != nil {
		printErrorAndExit(err)
	}
	dst.InitLog()
}

func resolveSchemeFlags(parser *flags.Parser, schemeFlags *config.SchemeFlags) {
	err := schemeFlags.ResolveScheme(parser)
	if err != nil {
		printErrorAndExit(err)
	}
}

func combineLogFlags(dst, src *config.LogFlags) {
	if dst.LogLevel == "" {
		dst.LogLevel = src.LogLevel
	}
	if dst.LogDir == "" {
		dst.LogDir = src.LogDir
	}
}
