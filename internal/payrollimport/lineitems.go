package payrollimport

import (
	"context"
	"fmt"

	"salary-system/internal/catalog"
	"salary-system/internal/payroll"
	"salary-system/internal/sheet"

	"github.com/google/uuid"
)

// LineItemImporter turns one earnings row into payroll line items.
// Columns become items only on an exact component-name match; the fuzzy
// matcher is a diagnostic aid for the operator, never an import-time
// guesser.
type LineItemImporter struct {
	repo payroll.Repository
}

func NewLineItemImporter(repo payroll.Repository) *LineItemImporter {
	return &LineItemImporter{repo: repo}
}

// ImportRow inserts the row's items in one bulk statement. Amounts are
// stored as absolute values: whether a figure is added or subtracted is
// decided by its component's category at calculation time, not by the
// sign an author happened to type.
func (li *LineItemImporter) ImportRow(
	ctx context.Context,
	row sheet.Row,
	fc catalog.FieldCatalog,
	payrollID uuid.UUID,
) (int, error) {
	structural := fc.StructuralNames()

	var notes *string
	if v, ok := row[catalog.FieldNotes]; ok && v != "" {
		notes = &v
	}

	var items []payroll.LineItem
	for column, cell := range row {
		if structural[column] || cell == "" {
			continue
		}

		component, ok := fc.Components[column]
		if !ok {
			// Unmapped column; the analysis side channel already
			// surfaced it as a suggestion or warning.
			continue
		}

		amount, err := parseAmount(cell)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not an amount", column, cell)
		}
		if amount.IsZero() {
			continue
		}

		items = append(items, payroll.LineItem{
			ID:          uuid.New(),
			PayrollID:   payrollID,
			ComponentID: component.ID,
			Amount:      amount.Abs(),
			Notes:       notes,
		})
	}

	if len(items) == 0 {
		return 0, nil
	}

	if err := payroll.MapItemInsertError(li.repo.BulkInsertItems(ctx, items)); err != nil {
		return 0, err
	}
	return len(items), nil
}
