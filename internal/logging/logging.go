// Package logging sets up module-scoped, leveled loggers. Every module logs at
// INFO by default; PIXELSTEP_DEBUG_<MODULE>=1 (e.g. PIXELSTEP_DEBUG_MEMORY=1)
// turns on DEBUG for one module and PIXELSTEP_DEBUG=1 for all of them.
package logging

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const envPrefix = "PIXELSTEP_DEBUG"

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{shortfile} ▶ %{level:.4s} [%{module}]%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

func init() {
	base := logging.NewLogBackend(os.Stderr, "", 0)
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(base, format))
	if os.Getenv(envPrefix) == "1" {
		backend.SetLevel(logging.DEBUG, "")
	} else {
		backend.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(backend)
}

// For returns the logger for module, honouring its debug environment toggle.
func For(module string) *logging.Logger {
	if os.Getenv(envPrefix+"_"+strings.ToUpper(module)) == "1" {
		backend.SetLevel(logging.DEBUG, module)
	}
	return logging.MustGetLogger(module)
}
