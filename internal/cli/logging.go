package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/esmdiag/internal/logging"
	"github.com/example/esmdiag/internal/wire"
)

var (
	verbosity int
	logger    = zap.NewNop()
)

// BindGlobalFlags registers the flags shared by every command.
func BindGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
}

// SetupLogger builds the logger from the -v count, raised to floor. Commands
// that load a namelist call it again with the namelist's verbosity before
// touching any service.
func SetupLogger(floor int) error {
	l, err := logging.New(max(verbosity, floor))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	_ = logger.Sync()
	logger = l
	wire.SetLogger(l)
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = logger.Sync()
}
