package main

import (
	"github.com/kaspanet/utxoledger/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXTL")
