// Package statement defines the shared data model for the parsing pipeline:
// positioned text fragments on the input side, and validated Statement and
// Transaction records on the output side.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fragment is one positioned piece of text extracted from a PDF page.
// Coordinates are in PDF layout units with Y increasing upward.
type Fragment struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Page   int     `json:"page"`
}

// Page holds the fragments extracted from a single PDF page.
type Page struct {
	Number    int
	Fragments []Fragment
}

// Document is the decoded form of one source PDF.
type Document struct {
	SourceFile string
	Pages      []Page
	PageCount  int
}

// RawLine is one reconstructed table row of a page.
type RawLine struct {
	Text  string
	Page  int
	Index int
}

// Section identifies the printed statement sub-table a transaction was found
// under. Sections hint transaction direction during normalization.
type Section string

const (
	SectionDeposits          Section = "deposits"
	SectionATMDebit          Section = "atm-debit"
	SectionOtherSubtractions Section = "other-subtractions"
	SectionChecks            Section = "checks"
	SectionFees              Section = "fees"
	SectionNone              Section = ""
)

// RawTransaction is the unparsed (date, description, amount) tuple a dialect
// parser extracts from one or more raw lines. It is consumed by the normalizer
// and discarded.
type RawTransaction struct {
	Date         string // as printed, e.g. "03/20/25" or "03/20"
	PostedDate   string // as printed, when the dialect prints both dates
	Description  string
	Amount       string // as printed, e.g. "1,300.00" or "-45.17"
	Page         int
	LineIndex    int
	Section      Section
	OriginalLine string // the seed line plus any merged continuation lines
}

// AccountType is the kind of account a statement belongs to.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
)

// AccountInfo describes the account and period a statement covers.
// PeriodStart is never after PeriodEnd for a successfully parsed header.
type AccountInfo struct {
	Institution   string      `json:"institution"`
	Type          AccountType `json:"account_type"`
	NumberMasked  string      `json:"account_number_masked"`
	PeriodStart   time.Time   `json:"statement_period_start"`
	PeriodEnd     time.Time   `json:"statement_period_end"`
}

// BalanceInfo carries the balances printed on a statement. HasStarting and
// HasEnding record whether the figures were actually found; reconciliation of
// a statement without them is skipped with a warning.
type BalanceInfo struct {
	Starting     decimal.Decimal `json:"starting_balance"`
	Ending       decimal.Decimal `json:"ending_balance"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	HasStarting  bool            `json:"-"`
	HasEnding    bool            `json:"-"`
}

// Direction is the canonical money-flow direction of a transaction.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Channel classifies how a transaction was made.
type Channel string

const (
	ChannelCheckcard              Channel = "CHECKCARD"
	ChannelPurchase               Channel = "PURCHASE"
	ChannelATMDeposit             Channel = "ATM_DEPOSIT"
	ChannelATMWithdrawal          Channel = "ATM_WITHDRAWAL"
	ChannelFinancialCenterDeposit Channel = "FINANCIAL_CENTER_DEPOSIT"
	ChannelOnlineBankingTransfer  Channel = "ONLINE_BANKING_TRANSFER"
	ChannelZelle                  Channel = "ZELLE"
	ChannelCheck                  Channel = "CHECK"
	ChannelFee                    Channel = "FEE"
	ChannelOther                  Channel = "OTHER"
)

// Categorization is the categorizer's verdict for a transaction.
type Categorization struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Confidence  float64 `json:"confidence"`
	RuleID      string  `json:"rule_id,omitempty"`
	Rationale   string  `json:"rationale,omitempty"`
}

// Flags marks notable transaction traits. A transaction with no applicable
// flags carries a nil *Flags, not a zeroed struct.
type Flags struct {
	IsTransfer       bool `json:"is_transfer,omitempty"`
	IsCashWithdrawal bool `json:"is_cash_withdrawal,omitempty"`
	IsCashDeposit    bool `json:"is_cash_deposit,omitempty"`
	IsRecurring      bool `json:"is_recurring,omitempty"`
	IsSubscription   bool `json:"is_subscription,omitempty"`
}

// Transaction is the canonical output unit of the pipeline.
// Amount is signed: negative if and only if Direction is Debit.
type Transaction struct {
	ID             string          `json:"transaction_id"`
	Date           string          `json:"date"` // ISO 8601 (YYYY-MM-DD)
	PostedDate     string          `json:"posted_date,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      Direction       `json:"direction"`
	Description    string          `json:"description"`
	DescriptionRaw string          `json:"description_raw"`
	Merchant       string          `json:"merchant,omitempty"`
	BankReference  string          `json:"bank_reference,omitempty"`
	Channel        Channel         `json:"channel"`
	ChannelSubtype string          `json:"channel_subtype,omitempty"`
	Categorization Categorization  `json:"categorization"`
	Page           int             `json:"page"`
	OriginalText   string          `json:"raw"`
	Flags          *Flags          `json:"flags,omitempty"`
}

// Statement owns the transactions parsed from one statement period of one
// source file. After merging, the surviving Statement owns the deduplicated
// union for its period.
type Statement struct {
	ID              string        `json:"statement_id"`
	Account         AccountInfo   `json:"account"`
	Balance         BalanceInfo   `json:"balance"`
	Transactions    []Transaction `json:"transactions"`
	Warnings        []string      `json:"warnings,omitempty"`
	SourceFile      string        `json:"source_file"`
	FromCombinedPDF bool          `json:"from_combined_pdf,omitempty"`
}

// MergeResult is the single source of truth after combining all source files.
type MergeResult struct {
	Statements                   []*Statement `json:"statements"`
	TotalTransactions            int          `json:"total_transactions"`
	DuplicateStatementsRemoved   int          `json:"duplicate_statements_removed"`
	DuplicateTransactionsRemoved int          `json:"duplicate_transactions_removed"`
}

// SignedAmount returns amount with the sign implied by direction.
func SignedAmount(abs decimal.Decimal, dir Direction) decimal.Decimal {
	abs = abs.Abs()
	if dir == Debit {
		return abs.Neg()
	}
	return abs
}
