/**
* Name: 			root.go
* Description: 		디바이스 장부 CLI (cobra)
* Workflow: 		.env/환경 변수 -> 플래그 덮어쓰기 -> 로컬 저장소 + ledger.Service 생성
 */
package cli

import (
	"context"
	"fmt"
	"os"

	"RieperLogistics_ScanLedger/internal/config"
	"RieperLogistics_ScanLedger/internal/ledger"
	"RieperLogistics_ScanLedger/internal/storage"
	"RieperLogistics_ScanLedger/internal/uploader"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// 모든 하위 명령 공통 플래그
type RootOptions struct {
	EnvFile  string
	DBPath   string
	Endpoint string
	LogLevel string
	JSONLogs bool

	device config.Device
	logger *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Scan ledger device tool",
		Long: `Offline scan ledger for the warehouse floor.

Entries are stored in a local SQLite file until "ledger send" appends the
current worker's batch as CSV to the append backend.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", ".env", "env file to load before reading configuration")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the local SQLite ledger (overrides LEDGER_DB)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "append endpoint URL (overrides APPEND_ENDPOINT)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&opts.JSONLogs, "json-logs", false, "write logs as JSON")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSendCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))

	return cmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	config.LoadEnv(o.EnvFile)
	device, err := config.LoadDevice()
	if err != nil {
		return err
	}
	if o.DBPath != "" {
		device.DBPath = o.DBPath
	}
	if o.Endpoint != "" {
		device.AppendEndpoint = o.Endpoint
	}
	if o.LogLevel != "" {
		device.LogLevel = o.LogLevel
	}
	o.device = device

	o.logger = config.NewLogger(device.LogLevel, o.JSONLogs)
	o.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// 저장소를 열고 서비스를 만든다. 반환된 close 함수로 저장소를 닫는다.
func (o *RootOptions) openService(ctx context.Context) (*ledger.Service, func(), error) {
	store, err := storage.Open(o.device.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger %s: %w", o.device.DBPath, err)
	}
	session, err := config.LoadSession(ctx, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	client := uploader.NewClient(o.device.AppendEndpoint, o.device.HTTPTimeout)
	svc := ledger.NewService(store, store, session, client, o.logger)
	return svc, func() { store.Close() }, nil
}
