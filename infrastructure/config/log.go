package config

import (
	"path/filepath"

	"github.com/kaspanet/utxoledger/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel       = "info"
	defaultLogFilename    = "txtool.log"
	defaultErrLogFilename = "txtool_err.log"
)

// LogFlags holds the logging configuration shared by all commands.
type LogFlags struct {
	LogLevel string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir   string `long:"logdir" description:"Directory to log output. Logs go to stderr only when not set"`

	LogFile    string
	ErrLogFile string
}

// ResolveLog applies the requested log levels to the registered subsystems
// and sets LogFile and ErrLogFile when a log directory was given. It does not
// start the logging backend.
func (logFlags *LogFlags) ResolveLog() error {
	if logFlags.LogLevel == "" {
		logFlags.LogLevel = defaultLogLevel
	}
	err := logger.ParseAndSetLogLevels(logFlags.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid --loglevel")
	}

	if logFlags.LogDir == "" {
		logFlags.LogFile = ""
		logFlags.ErrLogFile = ""
		return nil
	}
	logDir, err := filepath.Abs(logFlags.LogDir)
	if err != nil {
		return errors.WithStack(err)
	}
	logFlags.LogFile = filepath.Join(logDir, defaultLogFilename)
	logFlags.ErrLogFile = filepath.Join(logDir, defaultErrLogFilename)
	return nil
}

// InitLog starts the logging backend according to the resolved flags.
func (logFlags *LogFlags) InitLog() {
	if logFlags.LogFile == "" {
		logger.InitLogStderr()
		return
	}
	logger.InitLog(logFlags.LogFile, logFlags.ErrLogFile)
}
