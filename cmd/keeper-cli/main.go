// Keeper CLI — инструмент командной строки для управления
// аккаунтами и запуска разовых циклов.
//
// Использование:
//
//	keeper [--accounts-file FILE] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	accounts  Управление аккаунтами (list, import, export)
//	cycle     Один проход по всем аккаунтам
//
// Хранилище — Postgres при заданном DB_URL, иначе CSV-файл.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Keeper/internal/cli"
	"github.com/shaiso/Keeper/internal/store"
	"github.com/shaiso/Keeper/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var accountsFile string
	var jsonOutput bool

	telemetry.SetupLogger()

	rootCmd := &cobra.Command{
		Use:           "keeper",
		Short:         "Keeper CLI — multi-account workflow tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&accountsFile, "accounts-file", "accounts.csv", "CSV account store (used when DB_URL is not set)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	storeFn := func() (store.Store, func(), error) {
		if os.Getenv("DB_URL") != "" {
			pool, err := store.NewPool(context.Background())
			if err != nil {
				return nil, nil, err
			}
			return store.NewPgStore(pool), pool.Close, nil
		}
		return store.NewCSVStore(accountsFile), func() {}, nil
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewAccountsCmd(storeFn, outputFn),
		cli.NewCycleCmd(storeFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
