package builder

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/lang"
)

// ScanWarnings pattern-matches the captured compiler output and appends one
// diagnostic line to the warning log on a hit. It never fails the build:
// filesystem trouble is logged and swallowed.
func ScanWarnings(cfg *config.Config, l lang.Language) {
	if cfg.WarnFile == "" {
		return
	}
	pattern := cfg.WarnPatterns[l.String()]
	if pattern == "" {
		return
	}
	outputs, err := os.ReadFile(cfg.CompileOutputs)
	if err != nil {
		log.Warnf("warning scan: read %s: %s", cfg.CompileOutputs, err)
		return
	}
	if !bytes.Contains(outputs, []byte(pattern)) {
		return
	}
	f, err := os.OpenFile(cfg.WarnFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Warnf("warning scan: open %s: %s", cfg.WarnFile, err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "found %q in compiler output\n", pattern)
}
