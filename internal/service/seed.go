package service

import "github.com/Skotchmaster/buildmart/internal/models"

func strPtr(s string) *string { return &s }

func SampleProducts() []models.Product {
	return []models.Product{
		{
			Title:       "Ready‑Mix Concrete (M25)",
			Description: strPtr("Premium grade M25 ready‑mix concrete suitable for foundations and slabs."),
			Price:       109.0,
			Category:    "Concrete",
			Image:       strPtr("https://images.unsplash.com/photo-1591459034474-3c73e6a4c5a3?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "TMT Steel Rebars 12mm",
			Description: strPtr("High strength corrosion‑resistant TMT bars for structural reinforcement."),
			Price:       2.2,
			Category:    "Steel",
			Image:       strPtr("https://images.unsplash.com/photo-1607040327302-8cfb0f2f03b2?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "Crushed Stone Aggregate 20mm",
			Description: strPtr("Washed angular aggregate ideal for RCC and road base layers."),
			Price:       35.0,
			Category:    "Aggregates",
			Image:       strPtr("https://images.unsplash.com/photo-1566577739112-5180d4bf939b?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "Portland Pozzolana Cement (50kg)",
			Description: strPtr("Low‑heat PPC cement with superior durability and workability."),
			Price:       7.5,
			Category:    "Cement",
			Image:       strPtr("https://images.unsplash.com/photo-1621847468514-f5f8d7c94605?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
	}
}
