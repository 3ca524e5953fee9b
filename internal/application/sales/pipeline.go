package sales

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortSpec selects the single active sort column. Choosing a new column
// replaces any previous one; the type holds at most one by construction.
type SortSpec struct {
	Column     string
	Descending bool
}

// Sortable columns for the transaction list
const (
	SortByCustomer    = "customer"
	SortByBranch      = "branch"
	SortBySKU         = "sku"
	SortByType        = "transaction_type"
	SortByDate        = "transaction_date"
	SortByAmount      = "amount"
	SortByQuantity    = "quantity"
	SortByOutstanding = "outstanding"
)

// sortableColumns whitelists the columns the pipeline can sort by
var sortableColumns = map[string]bool{
	SortByCustomer:    true,
	SortByBranch:      true,
	SortBySKU:         true,
	SortByType:        true,
	SortByDate:        true,
	SortByAmount:      true,
	SortByQuantity:    true,
	SortByOutstanding: true,
}

// ColumnFilters holds per-column filters: single-value for date and amount,
// set membership for customer, branch, SKU and type.
type ColumnFilters struct {
	Customers []string
	Branches  []string
	SKUs      []string
	Types     []string
	Date      *time.Time
	Amount    *decimal.Decimal
}

// ListState is the complete presentation state for the transaction list
type ListState struct {
	Search   string
	Filters  ColumnFilters
	Sort     *SortSpec
	Page     int
	PageSize int
}

// Page is one page of the filtered, sorted transaction list plus the counts
// the table header needs.
type Page struct {
	Rows          []AnnotatedRow `json:"rows"`
	TotalRows     int            `json:"total_rows"`
	TotalFiltered int            `json:"total_filtered"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// ApplyListState runs the full pipeline over balance-annotated rows: free-text
// search, per-column filters, single-column sort (descending transaction date
// when none is active), then fixed-size pagination. It is pure: the input
// slice is never mutated.
func ApplyListState(rows []AnnotatedRow, state ListState) Page {
	filtered := make([]AnnotatedRow, 0, len(rows))
	for _, row := range rows {
		if matchesSearch(row, state.Search) && matchesFilters(row, state.Filters) {
			filtered = append(filtered, row)
		}
	}

	sortRows(filtered, state.Sort)

	page := state.Page
	if page < 1 {
		page = 1
	}
	pageSize := state.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Rows:          filtered[start:end],
		TotalRows:     len(rows),
		TotalFiltered: len(filtered),
		Page:          page,
		PageSize:      pageSize,
	}
}

// matchesSearch checks a case-insensitive substring against every displayed
// column of the row.
func matchesSearch(row AnnotatedRow, search string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}
	haystacks := []string{
		row.CustomerName,
		row.Branch,
		row.SKU,
		row.Description,
		row.TransactionType,
		row.Amount.StringFixed(2),
		row.Outstanding.StringFixed(2),
		row.TransactionDate.Format("2006-01-02"),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), search) {
			return true
		}
	}
	return false
}

func matchesFilters(row AnnotatedRow, f ColumnFilters) bool {
	if !inSet(row.CustomerName, f.Customers) {
		return false
	}
	if !inSet(row.Branch, f.Branches) {
		return false
	}
	if !inSet(row.SKU, f.SKUs) {
		return false
	}
	if !inSet(row.TransactionType, f.Types) {
		return false
	}
	if f.Date != nil && !sameDay(row.TransactionDate, *f.Date) {
		return false
	}
	if f.Amount != nil && !row.Amount.Equal(*f.Amount) {
		return false
	}
	return true
}

// inSet is set membership with an empty set meaning "no filter"
func inSet(value string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortRows(rows []AnnotatedRow, spec *SortSpec) {
	column := SortByDate
	descending := true
	if spec != nil && sortableColumns[spec.Column] {
		column = spec.Column
		descending = spec.Descending
	}

	less := lessFunc(column)
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFunc(column string) func(a, b AnnotatedRow) bool {
	switch column {
	case SortByCustomer:
		return func(a, b AnnotatedRow) bool { return a.CustomerName < b.CustomerName }
	case SortByBranch:
		return func(a, b AnnotatedRow) bool { return a.Branch < b.Branch }
	case SortBySKU:
		return func(a, b AnnotatedRow) bool { return a.SKU < b.SKU }
	case SortByType:
		return func(a, b AnnotatedRow) bool { return a.TransactionType < b.TransactionType }
	case SortByAmount:
		return func(a, b AnnotatedRow) bool { return a.Amount.LessThan(b.Amount) }
	case SortByQuantity:
		return func(a, b AnnotatedRow) bool { return a.Quantity < b.Quantity }
	case SortByOutstanding:
		return func(a, b AnnotatedRow) bool { return a.Outstanding.LessThan(b.Outstanding) }
	default:
		return func(a, b AnnotatedRow) bool {
			if !a.TransactionDate.Equal(b.TransactionDate) {
				return a.TransactionDate.Before(b.TransactionDate)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}
