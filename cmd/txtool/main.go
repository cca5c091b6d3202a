package main

import (
	"os"

	"github.com/kaspanet/utxoledger/util/panics"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, "main")

	subCmd, config := parseCommandLine()

	var err error
	switch subCmd {
	case encodeSubCmd:
		err = encode(config.(*encodeConfig), os.Stdout)
	case decodeSubCmd:
		err = decode(config.(*decodeConfig), os.Stdout)
	case validateSubCmd:
		err = validate(config.(*validateConfig), os.Stdout)
	case signSubCmd:
		err = sign(config.(*signConfig), os.Stdout)
	case genKeyPairSubCmd:
		err = genKeyPair(config.(*genKeyPairConfig), os.Stdout)
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
	closeLog()
}
