package models

// EggLog captures one day's egg collection.
type EggLog struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// SaleDetails holds the pricing of a sold harvest.
type SaleDetails struct {
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// HarvestLog captures one harvest event and, when sold, its sale details.
type HarvestLog struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Item        string       `json:"item"`
	Type        string       `json:"type"`
	Quantity    float64      `json:"quantity"`
	Unit        string       `json:"unit"`
	Notes       string       `json:"notes"`
	Sold        bool         `json:"sold"`
	SaleDetails *SaleDetails `json:"saleDetails,omitempty"`
}
