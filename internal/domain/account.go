package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountType is one of the five roots of the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// ValidAccountType reports whether t is a member of the closed enumeration.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// NormalSide is the side (debit or credit) on which a balance is stated as
// positive for a given account type.
type NormalSide string

const (
	NormalSideDebit  NormalSide = "debit"
	NormalSideCredit NormalSide = "credit"
)

// NormalSideFor returns the normal side for an account type: debit for
// asset/expense, credit for liability/equity/income.
func NormalSideFor(t AccountType) NormalSide {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalSideDebit
	default:
		return NormalSideCredit
	}
}

// AccountSubtype refines AccountType. The enumeration below is the
// canonical set seeded by chart-of-accounts defaults and referenced by
// system-account lookups (AR, AP, Sales Tax Payable, …); tenants may also
// create accounts with subtype "" (unspecified) or a custom value, so this
// is advisory, not a database-enforced enum.
type AccountSubtype string

const (
	SubtypeBank              AccountSubtype = "bank"
	SubtypeCash              AccountSubtype = "cash"
	SubtypeAccountsReceivable AccountSubtype = "accounts_receivable"
	SubtypeInventory         AccountSubtype = "inventory"
	SubtypeFixedAsset        AccountSubtype = "fixed_asset"
	SubtypeAccountsPayable   AccountSubtype = "accounts_payable"
	SubtypeSalesTaxPayable   AccountSubtype = "sales_tax_payable"
	SubtypeOwnersEquity      AccountSubtype = "owners_equity"
	SubtypeRetainedEarnings  AccountSubtype = "retained_earnings"
	SubtypeSales             AccountSubtype = "sales"
	SubtypeCostOfGoodsSold   AccountSubtype = "cost_of_goods_sold"
	SubtypeOperatingExpense  AccountSubtype = "operating_expense"
)

// Account is a node in the chart of accounts.
type Account struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	AccountNumber   string // unique per tenant when set
	Name            string
	Type            AccountType
	Subtype         AccountSubtype
	ParentAccountID *uuid.UUID
	Description     string
	IsSystemAccount bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalSide returns the normal side for this account's type.
func (a Account) NormalSide() NormalSide {
	return NormalSideFor(a.Type)
}

// AccountBalance is the derived, read-time balance for an account: the sum
// of posted ledger debits and credits, signed by normal side.
type AccountBalance struct {
	AccountID   uuid.UUID
	DebitTotal  Money
	CreditTotal Money
	Balance     Money // signed so that a normal-side balance is positive
}

// AccountWithBalance is the response shape for GetAccount: the account plus
// its current balance and a summary of direct children.
type AccountWithBalance struct {
	Account  Account
	Balance  AccountBalance
	Children []AccountSummary
}

// AccountSummary is a lightweight child-account representation.
type AccountSummary struct {
	ID      uuid.UUID
	Name    string
	Type    AccountType
	Balance Money
}

// Account-related domain errors.
var (
	ErrAccountNotFound          = &Error{Code: ENOTFOUND, Message: "account not found"}
	ErrAccountNumberConflict    = &Error{Code: ECONFLICT, Message: "account number already in use"}
	ErrParentTypeMismatch       = &Error{Code: EINVALID, Message: "parent account must have the same type"}
	ErrCannotDeactivateSystem   = &Error{Code: EPRECONDITION, Message: "cannot deactivate a system account"}
	ErrCannotDeleteSystem       = &Error{Code: EPRECONDITION, Message: "cannot delete a system account"}
	ErrAccountHasChildren       = &Error{Code: EPRECONDITION, Message: "cannot delete an account that has child accounts"}
	ErrAccountHasLedgerEntries  = &Error{Code: EPRECONDITION, Message: "cannot delete an account referenced by ledger entries"}
	ErrAccountTypeImmutable     = &Error{Code: EINVALID, Message: "account type cannot be changed after creation"}
)
