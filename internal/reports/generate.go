package reports

import (
	"strconv"

	"github.com/rentier-erp/rentier-erp/internal/shared"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
)

func money(v float64) string {
	return strconv.FormatFloat(shared.Round2(v), 'f', 2, 64)
}

func whole(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// BuildReceiptsDetailed renders one row per ledger entry with its
// payment balance.
func BuildReceiptsDetailed(entries []EntryRow) Report {
	r := Report{Headers: []string{
		"uid", "receipt_id", "assignment_id", "unit", "owner", "client",
		"receipt_no", "period", "issue_date", "amount", "amount_received", "balance",
	}}
	for _, e := range entries {
		r.Rows = append(r.Rows, []string{
			e.UID.String(),
			strconv.FormatInt(e.ReceiptID, 10),
			strconv.FormatInt(e.AssignmentID, 10),
			e.UnitReference,
			e.OwnerName,
			e.ClientName,
			strconv.Itoa(e.ReceiptNo),
			e.Period.Format("2006-01"),
			e.IssueDate.Format("2006-01-02"),
			money(e.Amount),
			money(e.AmountReceived),
			money(e.Amount - e.AmountReceived),
		})
	}
	return r
}

// BuildReceiptsByOwner aggregates nominal and received totals per owner,
// in first-seen entry order.
func BuildReceiptsByOwner(entries []EntryRow) Report {
	r := Report{Headers: []string{"owner", "total_nominal", "total_received", "outstanding"}}

	type totals struct {
		name              string
		nominal, received float64
	}
	var order []int64
	byOwner := map[int64]*totals{}
	for _, e := range entries {
		t, ok := byOwner[e.OwnerID]
		if !ok {
			t = &totals{name: e.OwnerName}
			byOwner[e.OwnerID] = t
			order = append(order, e.OwnerID)
		}
		t.nominal += e.Amount
		t.received += e.AmountReceived
	}
	for _, id := range order {
		t := byOwner[id]
		r.Rows = append(r.Rows, []string{
			t.name, money(t.nominal), money(t.received), money(t.nominal - t.received),
		})
	}
	return r
}

// BuildReceiptsMinimal keeps only what the annual declaration needs.
func BuildReceiptsMinimal(entries []EntryRow) Report {
	full := BuildReceiptsByOwner(entries)
	r := Report{Headers: []string{"owner", "total_received"}}
	for _, row := range full.Rows {
		r.Rows = append(r.Rows, []string{row[0], row[2]})
	}
	return r
}

// BuildTaxesDetailed renders the full derivation per owner. The rounded
// tax column is the final ceiled liability; due is that amount less the
// withholding credit, and can go negative when withholding overshot.
func BuildTaxesDetailed(results []taxes.Result) Report {
	r := Report{Headers: []string{
		"owner", "gross", "abatement", "initial_tax", "family_deduction",
		"after_family", "withheld", "final_tax_unrounded", "rounded_tax", "due",
	}}
	for _, t := range results {
		r.Rows = append(r.Rows, []string{
			t.OwnerName,
			money(t.Gross),
			money(t.Gross - t.Taxable),
			money(t.InitialTax),
			money(t.FamilyDeduction),
			money(t.AfterFamily),
			money(t.Withheld),
			money(t.AfterWithholding),
			whole(t.FinalTax),
			money(t.FinalTax - t.Withheld),
		})
	}
	return r
}

// BuildTaxesByAssignment renders each owner's per-assignment gross
// lines, a blank separator row, then the owner's summary row, under one
// combined header set.
func BuildTaxesByAssignment(results []taxes.Result, grossRows []AssignmentGrossRow) Report {
	r := Report{Headers: []string{
		"owner", "unit", "city", "client", "client_legal_id",
		"assignment_id", "gross", "rounded_tax", "withheld", "due",
	}}
	blank := make([]string, len(r.Headers))

	for _, t := range results {
		wrote := false
		for _, g := range grossRows {
			if g.OwnerID != t.OwnerID {
				continue
			}
			r.Rows = append(r.Rows, []string{
				g.OwnerName, g.UnitReference, g.UnitCity, g.ClientName,
				g.ClientLegalID, strconv.FormatInt(g.AssignmentID, 10),
				money(g.Gross), "", "", "",
			})
			wrote = true
		}
		if !wrote {
			continue
		}
		r.Rows = append(r.Rows, blank)
		r.Rows = append(r.Rows, []string{
			t.OwnerName, "", "", "", "", "",
			money(t.Gross),
			whole(t.FinalTax),
			money(t.Withheld),
			money(t.FinalTax - t.Withheld),
		})
	}
	return r
}

// BuildTaxesMinimal renders one line per owner for the filing summary.
func BuildTaxesMinimal(results []taxes.Result) Report {
	r := Report{Headers: []string{"owner", "year", "gross", "tax"}}
	for _, t := range results {
		r.Rows = append(r.Rows, []string{
			t.OwnerName, strconv.Itoa(t.Year), money(t.Gross), whole(t.FinalTax),
		})
	}
	return r
}
