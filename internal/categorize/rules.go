package categorize

// Rule maps a description substring to a category. Patterns are matched
// case-insensitively against the canonical description; higher priority wins
// when several patterns hit.
type Rule struct {
	ID          string
	Pattern     string
	Category    string
	Subcategory string
	Confidence  float64
	Priority    int
}

// builtinRules is the default rule set shipped with the parser. IDs are
// stable so exports and reruns reference the same rule.
var builtinRules = []Rule{
	{ID: "groceries-wholefoods", Pattern: "WHOLE FOODS", Category: "Groceries", Confidence: 0.95, Priority: 10},
	{ID: "groceries-traderjoes", Pattern: "TRADER JOE", Category: "Groceries", Confidence: 0.95, Priority: 10},
	{ID: "groceries-safeway", Pattern: "SAFEWAY", Category: "Groceries", Confidence: 0.95, Priority: 10},
	{ID: "groceries-kroger", Pattern: "KROGER", Category: "Groceries", Confidence: 0.95, Priority: 10},
	{ID: "groceries-costco", Pattern: "COSTCO", Category: "Groceries", Subcategory: "Warehouse", Confidence: 0.9, Priority: 10},

	{ID: "dining-starbucks", Pattern: "STARBUCKS", Category: "Dining", Subcategory: "Coffee", Confidence: 0.95, Priority: 10},
	{ID: "dining-mcdonalds", Pattern: "MCDONALD", Category: "Dining", Subcategory: "Fast Food", Confidence: 0.95, Priority: 10},
	{ID: "dining-chipotle", Pattern: "CHIPOTLE", Category: "Dining", Subcategory: "Fast Food", Confidence: 0.95, Priority: 10},
	{ID: "dining-doordash", Pattern: "DOORDASH", Category: "Dining", Subcategory: "Delivery", Confidence: 0.95, Priority: 10},
	{ID: "dining-ubereats", Pattern: "UBER EATS", Category: "Dining", Subcategory: "Delivery", Confidence: 0.95, Priority: 20},
	{ID: "dining-grubhub", Pattern: "GRUBHUB", Category: "Dining", Subcategory: "Delivery", Confidence: 0.95, Priority: 10},

	{ID: "transport-uber", Pattern: "UBER", Category: "Transport", Subcategory: "Rideshare", Confidence: 0.85, Priority: 5},
	{ID: "transport-lyft", Pattern: "LYFT", Category: "Transport", Subcategory: "Rideshare", Confidence: 0.95, Priority: 10},
	{ID: "transport-shell", Pattern: "SHELL OIL", Category: "Transport", Subcategory: "Fuel", Confidence: 0.95, Priority: 10},
	{ID: "transport-chevron", Pattern: "CHEVRON", Category: "Transport", Subcategory: "Fuel", Confidence: 0.95, Priority: 10},
	{ID: "transport-exxon", Pattern: "EXXON", Category: "Transport", Subcategory: "Fuel", Confidence: 0.95, Priority: 10},

	{ID: "shopping-amazon", Pattern: "AMAZON", Category: "Shopping", Subcategory: "Online", Confidence: 0.9, Priority: 10},
	{ID: "shopping-amzn", Pattern: "AMZN", Category: "Shopping", Subcategory: "Online", Confidence: 0.9, Priority: 10},
	{ID: "shopping-target", Pattern: "TARGET", Category: "Shopping", Confidence: 0.9, Priority: 10},
	{ID: "shopping-walmart", Pattern: "WALMART", Category: "Shopping", Confidence: 0.9, Priority: 10},
	{ID: "shopping-bestbuy", Pattern: "BEST BUY", Category: "Shopping", Subcategory: "Electronics", Confidence: 0.95, Priority: 10},

	{ID: "subs-netflix", Pattern: "NETFLIX", Category: "Entertainment", Subcategory: "Streaming", Confidence: 0.98, Priority: 10},
	{ID: "subs-spotify", Pattern: "SPOTIFY", Category: "Entertainment", Subcategory: "Streaming", Confidence: 0.98, Priority: 10},
	{ID: "subs-hulu", Pattern: "HULU", Category: "Entertainment", Subcategory: "Streaming", Confidence: 0.98, Priority: 10},
	{ID: "subs-apple", Pattern: "APPLE.COM/BILL", Category: "Entertainment", Subcategory: "Streaming", Confidence: 0.9, Priority: 10},

	{ID: "utilities-comcast", Pattern: "COMCAST", Category: "Utilities", Subcategory: "Internet", Confidence: 0.95, Priority: 10},
	{ID: "utilities-verizon", Pattern: "VERIZON", Category: "Utilities", Subcategory: "Phone", Confidence: 0.95, Priority: 10},
	{ID: "utilities-att", Pattern: "AT&T", Category: "Utilities", Subcategory: "Phone", Confidence: 0.95, Priority: 10},
	{ID: "utilities-pge", Pattern: "PG&E", Category: "Utilities", Subcategory: "Power", Confidence: 0.95, Priority: 10},

	{ID: "health-cvs", Pattern: "CVS/PHARM", Category: "Health", Subcategory: "Pharmacy", Confidence: 0.95, Priority: 10},
	{ID: "health-walgreens", Pattern: "WALGREENS", Category: "Health", Subcategory: "Pharmacy", Confidence: 0.95, Priority: 10},

	{ID: "income-payroll", Pattern: "PAYROLL", Category: "Income", Subcategory: "Salary", Confidence: 0.95, Priority: 10},
	{ID: "income-directdep", Pattern: "DIRECT DEP", Category: "Income", Confidence: 0.85, Priority: 5},

	{ID: "housing-rent", Pattern: "RENT", Category: "Housing", Subcategory: "Rent", Confidence: 0.7, Priority: 1},
	{ID: "housing-mortgage", Pattern: "MORTGAGE", Category: "Housing", Subcategory: "Mortgage", Confidence: 0.95, Priority: 10},
}
