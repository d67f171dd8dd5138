package model

import "github.com/shopspring/decimal"

// TopProduct is a product ranked by confirmed quantity sold.
type TopProduct struct {
	Name      string          `json:"name"`
	TotalSold int64           `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopCoupon is a coupon ranked by confirmed usage.
type TopCoupon struct {
	CouponCode    string          `json:"couponCode"`
	UsageCount    int64           `json:"usageCount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
}

// ConversionRate summarises the initiated-to-confirmed funnel.
type ConversionRate struct {
	Initiated int64  `json:"initiated"`
	Confirmed int64  `json:"confirmed"`
	Rate      string `json:"rate"`
}

// AnalyticsSummary aggregates the admin dashboard metrics. All figures are
// derived from confirmed orders only.
type AnalyticsSummary struct {
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TopProducts    []TopProduct    `json:"topProducts"`
	TopCoupons     []TopCoupon     `json:"topCoupons"`
	ConversionRate ConversionRate  `json:"conversionRate"`
}
