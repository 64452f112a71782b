package cli

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Keeper/internal/gateway"
	"github.com/shaiso/Keeper/internal/orchestrator"
	"github.com/shaiso/Keeper/internal/runner"
	"github.com/shaiso/Keeper/internal/session"
)

// NewCycleCmd создаёт команду одного прохода по всем аккаунтам.
func NewCycleCmd(storeFn StoreFactory, outputFn func() *Output) *cobra.Command {
	var gatewayURL string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Run a single cycle over all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := storeFn()
			if err != nil {
				return err
			}
			defer cleanup()
			out := outputFn()
			logger := slog.Default()

			orch := orchestrator.New(orchestrator.Config{
				NewSession: orchestrator.GatewaySessionFactory(gatewayURL, gateway.Policy{}, logger),
				BatchSize:  batchSize,
				Logger:     logger,
			})

			r, err := runner.New(runner.Config{
				Store:   st,
				Batcher: orch,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			tally, err := r.Cycle(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"TOTAL", "SUCCEEDED", "FAILED"}
			rows := [][]string{{
				strconv.Itoa(tally.Total()),
				strconv.Itoa(tally.Succeeded),
				strconv.Itoa(tally.Failed),
			}}
			out.Print(headers, rows, tally)
			return nil
		},
	}

	cmd.Flags().StringVar(&gatewayURL, "gateway-url", session.DefaultGatewayURL, "Gateway base URL")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Accounts per concurrent group (default 10)")

	return cmd
}
