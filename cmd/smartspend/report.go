package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/export"
	"github.com/smartspend/smartspend/internal/ledger"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregated views of the ledger",
		Long:  `Summaries, monthly trends, top spending categories, and per-category drill-downs.`,
	}

	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(trendCmd())
	cmd.AddCommand(topCmd())
	cmd.AddCommand(categoryReportCmd())

	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		windowStr string
		topN      int
		csvPath   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expenses, and per-category totals for a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			window, err := ledger.ParseWindow(windowStr)
			if err != nil {
				return err
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := eng.Summarize(ctx, window, time.Now(), topN)
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := export.SummaryToFile(csvPath, summary); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Summary written to %s", csvPath)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Summary (%s)", window)))
			fmt.Printf("  Income:   %s\n", cli.SuccessStyle.Render(summary.TotalIncome.String()))
			fmt.Printf("  Expenses: %s\n", cli.ErrorStyle.Render(summary.TotalExpense.String()))
			fmt.Printf("  Net:      %s\n\n", cli.BoldStyle.Render(summary.NetBalance.String()))

			if len(summary.Categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses in this window."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render("Count"))
			for _, cat := range summary.Categories {
				fmt.Fprintf(w, "%s\t%s\t%d\n", cat.Name, cat.Total.String(), cat.Count)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&windowStr, "window", "this-month", "Time window (this-month, last-month, this-year, all)")
	cmd.Flags().IntVar(&topN, "top", 3, "Number of top spending categories to include")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the per-category breakdown to a CSV file instead of printing")

	return cmd
}

func trendCmd() *cobra.Command {
	var (
		months   int
		category string
		csvPath  string
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Monthly income and expense totals, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if category != "" {
				points, err := eng.CategoryTrend(ctx, category, months, time.Now())
				if err != nil {
					return err
				}
				fmt.Println(cli.FormatTitle(fmt.Sprintf("%s, last %d months", category, months)))
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				defer func() { _ = w.Flush() }()
				fmt.Fprintf(w, "%s\t%s\n",
					cli.BoldStyle.Render("Month"),
					cli.BoldStyle.Render("Spent"))
				for _, p := range points {
					fmt.Fprintf(w, "%s\t%s\n", p.Month, p.Total.String())
				}
				return nil
			}

			points, err := eng.MonthlyTrend(ctx, months, time.Now())
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := export.TrendToFile(csvPath, points); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Trend written to %s", csvPath)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %d months", months)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Month"),
				cli.BoldStyle.Render("Income"),
				cli.BoldStyle.Render("Expenses"))
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Month, p.Income.String(), p.Expense.String())
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "Number of calendar months to include")
	cmd.Flags().StringVar(&category, "category", "", "Restrict the trend to one expense category")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the trend to a CSV file instead of printing")

	return cmd
}

func topCmd() *cobra.Command {
	var (
		windowStr string
		n         int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Top spending categories for a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			window, err := ledger.ParseWindow(windowStr)
			if err != nil {
				return err
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := eng.Summarize(ctx, window, time.Now(), n)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Top spending (%s)", window)))
			if len(summary.Top) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses in this window."))
				return nil
			}
			for i, ct := range summary.Top {
				fmt.Printf("  %d. %s\t%s\n", i+1, ct.Category, ct.Total.String())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&windowStr, "window", "this-month", "Time window (this-month, last-month, this-year, all)")
	cmd.Flags().IntVar(&n, "n", 3, "Number of categories to show")

	return cmd
}

func categoryReportCmd() *cobra.Command {
	var windowStr string

	cmd := &cobra.Command{
		Use:   "category <name>",
		Short: "Drill into one category's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			window, err := ledger.ParseWindow(windowStr)
			if err != nil {
				return err
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			detail, err := eng.CategoryDetail(ctx, args[0], window, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s)", detail.Name, window)))
			fmt.Printf("  Total: %s\n\n", cli.BoldStyle.Render(detail.Total.String()))
			if len(detail.Transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions in this window."))
				return nil
			}
			printTransactions(detail.Transactions)

			return nil
		},
	}

	cmd.Flags().StringVar(&windowStr, "window", "this-month", "Time window (this-month, last-month, this-year, all)")

	return cmd
}
