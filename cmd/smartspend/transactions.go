package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    `Record, list, edit, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(editTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(seedCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		amountStr string
		category  string
		date      string
		income    bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record a transaction",
		Long:  `Record an expense (default) or an income transaction (--income).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			if date == "" {
				date = time.Now().Format(model.DateLayout)
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := eng.AddTransaction(ctx, model.Transaction{
				Title:     args[0],
				Amount:    amount,
				Category:  category,
				Date:      date,
				IsExpense: !income,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %q (ID: %d)", txn.Title, txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&amountStr, "amount", "", "Transaction amount (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category name (required)")
	cmd.Flags().StringVar(&date, "date", "", `Transaction date, e.g. "14 Jan 2026" (default: today)`)
	cmd.Flags().BoolVar(&income, "income", false, "Record income instead of an expense")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := eng.RecentTransactions(ctx, limit)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'smartspend transactions add' to record one."))
				return nil
			}

			printTransactions(txns)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions to show (0 for all)")

	return cmd
}

func editTransactionCmd() *cobra.Command {
	var (
		title     string
		amountStr string
		category  string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Change a transaction's title, amount, category, or date. Unset flags keep the stored value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction ID: %w", err)
			}
			if title == "" && amountStr == "" && category == "" && date == "" {
				return fmt.Errorf("must specify --title, --amount, --category, or --date to edit")
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			current, err := store.GetTransactionByID(ctx, id)
			if err != nil {
				return err
			}

			txn := *current
			if title != "" {
				txn.Title = title
			}
			if amountStr != "" {
				amount, parseErr := decimal.NewFromString(amountStr)
				if parseErr != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, parseErr)
				}
				txn.Amount = amount
			}
			if category != "" {
				txn.Category = category
			}
			if date != "" {
				txn.Date = date
			}

			if err := eng.UpdateTransaction(ctx, id, txn); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&amountStr, "amount", "", "New amount")
	cmd.Flags().StringVar(&category, "category", "", "New category name")
	cmd.Flags().StringVar(&date, "date", "", `New date, e.g. "14 Jan 2026"`)

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction ID: %w", err)
			}

			if !force {
				fmt.Printf("Are you sure you want to delete transaction %d? (y/N): ", id)
				var response string
				_, _ = fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.DeleteTransaction(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample transactions into an empty ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.SeedSampleData(ctx, time.Now()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Sample data ready"))
			return nil
		},
	}
}

func printTransactions(txns []model.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Title"),
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Amount"))

	for _, txn := range txns {
		amount := txn.Amount.String()
		if txn.IsExpense {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", txn.ID, txn.Date, txn.Title, txn.Category, amount)
	}
}
