package store

import "viaggio/internal/core"

// SeedExpenses returns the deterministic starter dataset used when the
// persistence slot is absent or unreadable. A fresh copy is returned on
// every call so callers can mutate their slice freely.
func SeedExpenses() []core.Expense {
	return []core.Expense{
		{ID: "1", Amount: 1200, Currency: "TWD", Category: "transport", Date: "2023-10-01", Description: "High-speed rail ticket", Timestamp: 1696118400000},
		{ID: "2", Amount: 350, Currency: "TWD", Category: "food", Date: "2023-10-01", Description: "Railway bento", Timestamp: 1696140000000},
		{ID: "3", Amount: 4500, Currency: "TWD", Category: "stay", Date: "2023-10-01", Description: "Hotel, first night", Timestamp: 1696160000000},
		{ID: "4", Amount: 2000, Currency: "TWD", Category: "shopping", Date: "2023-10-02", Description: "Souvenirs", Timestamp: 1696240000000},
	}
}
