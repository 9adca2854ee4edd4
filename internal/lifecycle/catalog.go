package lifecycle

// defaultCategory describes one built-in catalog entry. Built-ins are
// identified by a stable key; their display names are locale-dependent
// and resynced at startup.
type defaultCategory struct {
	Key       string
	IsExpense bool
}

// fallbackKey identifies the built-in bucket that absorbs transactions
// from deleted categories. It must always exist.
const fallbackKey = "cat_other"

var defaultCatalog = []defaultCategory{
	{Key: "cat_food", IsExpense: true},
	{Key: "cat_transport", IsExpense: true},
	{Key: "cat_bills", IsExpense: true},
	{Key: "cat_entertainment", IsExpense: true},
	{Key: "cat_shopping", IsExpense: true},
	{Key: "cat_health", IsExpense: true},
	{Key: "cat_education", IsExpense: true},
	{Key: "cat_salary", IsExpense: false},
	{Key: "cat_bonus", IsExpense: false},
	{Key: "cat_allowance", IsExpense: false},
	{Key: "cat_investment", IsExpense: false},
	{Key: "cat_selling", IsExpense: false},
	{Key: "cat_gifted", IsExpense: false},
	{Key: "cat_other", IsExpense: false},
}
