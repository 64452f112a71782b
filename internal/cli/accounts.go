package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/signer"
	"github.com/shaiso/Keeper/internal/store"
)

// StoreFactory открывает хранилище аккаунтов.
// cleanup закрывает ресурсы хранилища (пул соединений).
type StoreFactory func() (st store.Store, cleanup func(), err error)

// NewAccountsCmd создаёт группу команд для управления аккаунтами.
func NewAccountsCmd(storeFn StoreFactory, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountsListCmd(storeFn, outputFn),
		newAccountsImportCmd(storeFn, outputFn),
		newAccountsExportCmd(storeFn, outputFn),
	)

	return cmd
}

func newAccountsListCmd(storeFn StoreFactory, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := storeFn()
			if err != nil {
				return err
			}
			defer cleanup()
			out := outputFn()

			accounts, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"ADDRESS", "PROXY", "REF_CODE", "POINTS"}
			rows := make([][]string, len(accounts))
			for i, acc := range accounts {
				rows[i] = []string{acc.Address, acc.ProxyURL, acc.RefCode, strconv.FormatInt(acc.Points, 10)}
			}

			out.Print(headers, rows, accounts)
			return nil
		},
	}
}

func newAccountsImportCmd(storeFn StoreFactory, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import accounts from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := storeFn()
			if err != nil {
				return err
			}
			defer cleanup()
			out := outputFn()

			accounts, err := store.NewCSVStore(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}

			// Выводим адреса из ключей: после импорта хранилище
			// содержит каноническую идентичность каждого аккаунта.
			for i := range accounts {
				if err := deriveAddress(&accounts[i]); err != nil {
					return fmt.Errorf("account %d: %w", i+1, err)
				}
			}

			if err := st.Save(cmd.Context(), accounts); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Imported %d accounts", len(accounts)))
			return nil
		},
	}
}

func newAccountsExportCmd(storeFn StoreFactory, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export accounts to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := storeFn()
			if err != nil {
				return err
			}
			defer cleanup()
			out := outputFn()

			accounts, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			if err := store.NewCSVStore(args[0]).Save(cmd.Context(), accounts); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Exported %d accounts", len(accounts)))
			return nil
		},
	}
}

// deriveAddress заполняет адрес аккаунта из его ключа подписи.
func deriveAddress(acc *domain.Account) error {
	sg, err := signer.FromHex(acc.PrivateKey)
	if err != nil {
		return err
	}
	acc.Address = sg.Address()
	return nil
}
