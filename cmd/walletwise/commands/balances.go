package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/service"
)

func balancesCmd() *cobra.Command {
	var applySettlements bool

	cmd := &cobra.Command{
		Use:   "balances <wallet-id>",
		Short: "Print a wallet's net balances and suggested transfers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			walletID := args[0]

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := store.GetWallet(ctx, walletID)
			if err != nil {
				return err
			}

			engine := calculator.NewEngine(cfg.Balance)
			net, err := service.Balances(ctx, store, engine, walletID, applySettlements)
			if err != nil {
				return err
			}

			names, err := service.DisplayNames(ctx, store, net)
			if err != nil {
				return err
			}

			places := models.CurrencyPlaces(wallet.Currency)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n\n", wallet.Name, wallet.Currency)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MEMBER\tBALANCE")
			for _, b := range net {
				fmt.Fprintf(w, "%s\t%s\n", names[b.MemberID], b.Amount.StringFixed(places))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			transfers := engine.SuggestTransfers(net)
			if len(transfers) == 0 {
				fmt.Fprintln(out, "\nAll settled up.")
				return nil
			}
			fmt.Fprintln(out, "\nSuggested transfers:")
			for _, t := range transfers {
				fmt.Fprintf(out, "  %s -> %s: %s\n", names[t.From], names[t.To], t.Amount.StringFixed(places))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&applySettlements, "apply-settlements", false, "net recorded settlements into the balances")
	return cmd
}
