package models

type DailySales struct {
	Date        string
	OrderCount  int
	TotalSales  float64
	AverageSale float64
}

type ItemSales struct {
	ItemName     string
	QuantitySold int
	Revenue      float64
}
