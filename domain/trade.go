package domain

import "time"

type PaymentType string

const (
	PaymentUpfront    PaymentType = "upfront"
	PaymentOnDelivery PaymentType = "on_delivery"
)

func (p PaymentType) Valid() bool {
	return p == PaymentUpfront || p == PaymentOnDelivery
}

type TradeRequest struct {
	SourceBody       string
	DestinationBody  string
	GoodsDescription string
	Quantity         int
	PaymentType      PaymentType
	// ShipSpeedRatio overrides the calculator's configured v/c for this call.
	ShipSpeedRatio *float64
}

// TradeQuote is a rounded quote. EffectiveInterestRatePercent is derived from
// the unrounded rate, so short trips do not collapse to 0%.
type TradeQuote struct {
	DistanceAU                   float64
	EarthTravelTimeDays          float64
	ShipTravelTimeDays           float64
	TimeDilationFactor           float64
	EffectiveInterestRate        float64
	EffectiveInterestRatePercent float64
	TotalCost                    float64
	ShipSpeedRatio               float64
}

// QuoteResponse is the shape returned to HTTP callers.
type QuoteResponse struct {
	QuoteID                      string  `json:"quoteId,omitempty"`
	DistanceAU                   float64 `json:"distanceAU"`
	EarthTravelTimeDays          float64 `json:"earthTravelTimeDays"`
	ShipTravelTimeDays           float64 `json:"shipTravelTimeDays"`
	TimeDilationFactor           float64 `json:"timeDilationFactor"`
	EffectiveInterestRatePercent float64 `json:"effectiveInterestRatePercent"`
	TotalCost                    float64 `json:"totalCost"`
	ShipSpeedRatio               float64 `json:"shipSpeedRatio"`
	Explanation                  string  `json:"explanation,omitempty"`
}

// QuoteRecord is a stored quote.
type QuoteRecord struct {
	ID                    string      `gorm:"column:id;primaryKey" json:"id"`
	SourceBody            string      `gorm:"column:source_body;index" json:"sourceBody"`
	DestinationBody       string      `gorm:"column:destination_body" json:"destinationBody"`
	GoodsDescription      string      `gorm:"column:goods_description" json:"goodsDescription"`
	Quantity              int         `gorm:"column:quantity" json:"quantity"`
	PaymentType           PaymentType `gorm:"column:payment_type" json:"paymentType"`
	ShipSpeedRatio        float64     `gorm:"column:ship_speed_ratio" json:"shipSpeedRatio"`
	DistanceAU            float64     `gorm:"column:distance_au" json:"distanceAU"`
	EarthTravelTimeDays   float64     `gorm:"column:earth_travel_time_days" json:"earthTravelTimeDays"`
	ShipTravelTimeDays    float64     `gorm:"column:ship_travel_time_days" json:"shipTravelTimeDays"`
	TimeDilationFactor    float64     `gorm:"column:time_dilation_factor" json:"timeDilationFactor"`
	EffectiveInterestRate float64     `gorm:"column:effective_interest_rate" json:"effectiveInterestRate"`
	TotalCost             float64     `gorm:"column:total_cost" json:"totalCost"`
	CreatedAt             time.Time   `gorm:"column:created_at;index" json:"createdAt"`
}

func (QuoteRecord) TableName() string {
	return "trade_quotes"
}

func NewQuoteRecord(id string, req TradeRequest, quote TradeQuote, createdAt time.Time) QuoteRecord {
	return QuoteRecord{
		ID:                    id,
		SourceBody:            req.SourceBody,
		DestinationBody:       req.DestinationBody,
		GoodsDescription:      req.GoodsDescription,
		Quantity:              req.Quantity,
		PaymentType:           req.PaymentType,
		ShipSpeedRatio:        quote.ShipSpeedRatio,
		DistanceAU:            quote.DistanceAU,
		EarthTravelTimeDays:   quote.EarthTravelTimeDays,
		ShipTravelTimeDays:    quote.ShipTravelTimeDays,
		TimeDilationFactor:    quote.TimeDilationFactor,
		EffectiveInterestRate: quote.EffectiveInterestRate,
		TotalCost:             quote.TotalCost,
		CreatedAt:             createdAt,
	}
}
