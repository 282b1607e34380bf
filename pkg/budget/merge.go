package budget

import (
	"fmt"
	"sort"
	"strings"
)

// mergeExpenses merges incoming expense lines into the existing ones,
// keyed by the lower-cased trimmed category name. An incoming line updates
// planned when supplied and actual only when supplied, so an absent actual
// never clears a previously recorded one. Lines with unknown categories are
// inserted. The merge has no notion of deletion: existing categories the
// caller left out survive. The result is sorted by display name,
// case-insensitive ascending.
func mergeExpenses(existing []ExpenseItem, incoming []ExpenseInput, keepNegative bool) ([]ExpenseItem, error) {
	byKey := make(map[string]*ExpenseItem, len(existing))
	for i := range existing {
		item := existing[i]
		byKey[categoryKey(item.Category)] = &item
	}

	for _, in := range incoming {
		category := strings.TrimSpace(in.Category)
		if category == "" {
			return nil, ErrMissingCategory
		}
		key := strings.ToLower(category)
		planned, err := cleanAmount(in.Planned, keepNegative)
		if err != nil {
			return nil, fmt.Errorf("invalid planned amount for %q: %w", category, err)
		}
		actual, err := cleanAmount(in.Actual, keepNegative)
		if err != nil {
			return nil, fmt.Errorf("invalid actual amount for %q: %w", category, err)
		}

		if item, ok := byKey[key]; ok {
			item.Category = category
			if planned != nil {
				item.Planned = *planned
			}
			if actual != nil {
				item.Actual = actual
			}
		} else {
			item := ExpenseItem{Category: category, Actual: actual}
			if planned != nil {
				item.Planned = *planned
			}
			byKey[key] = &item
		}
	}

	merged := make([]ExpenseItem, 0, len(byKey))
	for _, item := range byKey {
		merged = append(merged, *item)
	}
	sortExpenses(merged)
	return merged, nil
}

func categoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func sortExpenses(items []ExpenseItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Category), strings.ToLower(items[j].Category)
		if a == b {
			return items[i].Category < items[j].Category
		}
		return a < b
	})
}
