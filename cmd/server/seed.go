package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/httpkit/modules/entity"
)

func seed() []entity.Entity {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return []entity.Entity{
		{
			ID: 1, Name: "Transparency Network", Category: "ngo", Country: "BE",
			Budget: decimal.RequireFromString("125000.00"), Tags: []string{"governance"},
			CreatedAt: base, UpdatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: 2, Name: "European Rail Association", Category: "trade_association", Country: "FR",
			Budget: decimal.RequireFromString("980500.50"), Tags: []string{"transport", "energy"},
			CreatedAt: base, UpdatedAt: base.Add(72 * time.Hour),
		},
		{
			ID: 3, Name: "Consulting Partners", Category: "consultancy", Country: "DE",
			Budget: decimal.RequireFromString("45000"),
			CreatedAt: base, UpdatedAt: base,
		},
	}
}
