package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/budget"
	"github.com/smartspend/smartspend/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories and budgets",
		Long:  `List categories with their budget usage, add and delete user categories, and set budgets.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var expensesOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with budget usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := eng.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Budget"),
				cli.BoldStyle.Render("Spent"),
				cli.BoldStyle.Render("Used"),
				cli.BoldStyle.Render("Status"))

			for _, cat := range categories {
				kind := "income"
				if cat.IsExpense {
					kind = "expense"
				}
				if expensesOnly && !cat.IsExpense {
					continue
				}

				tier, used := budget.Classify(cat)
				usedCol := ""
				if cat.IsExpense && cat.Allocated.IsPositive() {
					// Display caps at 100; the alert text carries the
					// real overage.
					if used > 100 {
						used = 100
					}
					usedCol = fmt.Sprintf("%d%%", int(used))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cat.Name, kind, cat.Allocated.String(), cat.Spent.String(),
					usedCol, cli.StyleTier(tier, string(tier)))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&expensesOnly, "expenses", false, "Show only expense categories")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		budgetStr string
		income    bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a user category",
		Long:  `Create a new category. Expense categories may carry a budget; income categories never do.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			allocated := decimal.Zero
			if budgetStr != "" {
				var err error
				allocated, err = decimal.NewFromString(budgetStr)
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", budgetStr, err)
				}
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := eng.CreateCategory(ctx, args[0], allocated, !income)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %d)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&budgetStr, "budget", "", "Monthly budget for an expense category")
	cmd.Flags().BoolVar(&income, "income", false, "Create an income category")

	return cmd
}

func setBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-budget <name> <amount>",
		Short: "Set an expense category's budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			allocated, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", args[1], err)
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.UpdateAllocation(ctx, args[0], allocated); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget for %q set to %s", args[0], allocated)))
			return nil
		},
	}

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a user category",
		Long:  `Delete a user-created category. Its transactions move to the fallback bucket. Built-in categories cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Printf("Delete category %q and move its transactions to the fallback bucket? (y/N): ", args[0])
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
