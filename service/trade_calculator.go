package service

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"interstellar-trade/domain"
)

var ErrInvalidDistance = errors.New("distance must be a finite, non-negative number of AU")

// BodyLookup resolves a celestial body by its unique name.
type BodyLookup interface {
	Lookup(name string) (domain.CelestialBody, bool)
}

// TradeCalculator prices a shipment between two catalogued bodies, taking
// special-relativistic time dilation into account. It holds no mutable state
// and is safe for concurrent use.
type TradeCalculator struct {
	bodies         BodyLookup
	shipSpeedRatio float64
}

// NewTradeCalculator creates a calculator over the given body table. The
// ship speed ratio (v/c) must lie in (0, 1).
func NewTradeCalculator(bodies BodyLookup, shipSpeedRatio float64) (*TradeCalculator, error) {
	if err := validateShipSpeedRatio(shipSpeedRatio); err != nil {
		return nil, err
	}
	return &TradeCalculator{bodies: bodies, shipSpeedRatio: shipSpeedRatio}, nil
}

func (c *TradeCalculator) ShipSpeedRatio() float64 {
	return c.shipSpeedRatio
}

// ComputeDistance returns the separation of two bodies in AU. Bodies are
// modelled as sitting on a single radial line from the origin, so this is
// the difference of their distances rather than a 3-D distance.
func (c *TradeCalculator) ComputeDistance(source, destination string) (float64, error) {
	src, ok := c.bodies.Lookup(source)
	if !ok {
		return 0, domain.NewTradeError(domain.KindUnknownBody, source, "unknown celestial body %q", source)
	}
	dst, ok := c.bodies.Lookup(destination)
	if !ok {
		return 0, domain.NewTradeError(domain.KindUnknownBody, destination, "unknown celestial body %q", destination)
	}
	return math.Abs(dst.DistanceAU - src.DistanceAU), nil
}

// ComputeTimeDilation returns the Lorentz factor 1/sqrt(1 - (v/c)^2).
func ComputeTimeDilation(shipSpeedRatio float64) (float64, error) {
	if math.IsNaN(shipSpeedRatio) || shipSpeedRatio < 0 || shipSpeedRatio >= 1 {
		return 0, domain.NewTradeError(domain.KindInvalidSpeed, "",
			"ship speed ratio must be in [0, 1), got %v", shipSpeedRatio)
	}
	return 1 / math.Sqrt(1-shipSpeedRatio*shipSpeedRatio), nil
}

// ComputeTravelTimes returns the coordinate (Earth) time and the proper
// (ship) time of a trip, both in days, together with the dilation factor.
func ComputeTravelTimes(distanceAU, shipSpeedRatio float64) (earthDays, shipDays, gamma float64, err error) {
	if math.IsNaN(distanceAU) || math.IsInf(distanceAU, 0) || distanceAU < 0 {
		return 0, 0, 0, ErrInvalidDistance
	}

	gamma, err = ComputeTimeDilation(shipSpeedRatio)
	if err != nil {
		return 0, 0, 0, err
	}
	if distanceAU == 0 {
		return 0, 0, gamma, nil
	}
	if shipSpeedRatio == 0 {
		return 0, 0, 0, domain.NewTradeError(domain.KindInvalidSpeed, "",
			"a ship with speed ratio 0 never covers %v AU", distanceAU)
	}

	distanceKm := distanceAU * AUToKm
	shipSpeedKmPerSec := SpeedOfLightKmPerSec * shipSpeedRatio
	earthSeconds := distanceKm / shipSpeedKmPerSec
	shipSeconds := earthSeconds / gamma

	return earthSeconds / SecondsPerDay, shipSeconds / SecondsPerDay, gamma, nil
}

// ComputeInterestRate returns the effective interest accrued over the trip as
// a fraction. Upfront payments compound over Earth time; on-delivery payments
// compound over Earth time stretched by gamma.
func ComputeInterestRate(earthDays, gamma float64, paymentType domain.PaymentType) (float64, error) {
	earthYears := earthDays / DaysPerYear

	var exponent float64
	switch paymentType {
	case domain.PaymentUpfront:
		exponent = earthYears
	case domain.PaymentOnDelivery:
		exponent = earthYears * gamma
	default:
		return 0, domain.NewTradeError(domain.KindInvalidPaymentType, string(paymentType),
			"payment type must be %q or %q, got %q", domain.PaymentUpfront, domain.PaymentOnDelivery, paymentType)
	}

	rate := math.Pow(1+BaseAnnualInterestRate, exponent) - 1
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, domain.NewTradeError(domain.KindCostOverflow, string(paymentType),
			"interest over %.0f years overflows", exponent)
	}
	return rate, nil
}

// ComputeTotalCost applies the interest rate to the flat per-unit price.
// Quantities below 1 are charged as 1.
func ComputeTotalCost(quantity int, interestRate float64) float64 {
	baseCost := float64(max(1, quantity)) * BaseUnitCost
	return baseCost * (1 + interestRate)
}

// Quote validates the request and computes a rounded quote. Intermediate
// values keep full precision; only the returned fields are rounded.
func (c *TradeCalculator) Quote(req domain.TradeRequest) (domain.TradeQuote, error) {
	if req.SourceBody == req.DestinationBody {
		return domain.TradeQuote{}, domain.NewTradeError(domain.KindSameBody, req.SourceBody,
			"source and destination are both %q", req.SourceBody)
	}
	if req.Quantity > MaxQuantity {
		return domain.TradeQuote{}, domain.NewTradeError(domain.KindInvalidQuantity, "",
			"quantity exceeds the maximum of %d units", MaxQuantity)
	}

	ratio := c.shipSpeedRatio
	if req.ShipSpeedRatio != nil {
		ratio = *req.ShipSpeedRatio
		if err := validateShipSpeedRatio(ratio); err != nil {
			return domain.TradeQuote{}, err
		}
	}

	distance, err := c.ComputeDistance(req.SourceBody, req.DestinationBody)
	if err != nil {
		return domain.TradeQuote{}, err
	}

	earthDays, shipDays, gamma, err := ComputeTravelTimes(distance, ratio)
	if err != nil {
		return domain.TradeQuote{}, err
	}

	rate, err := ComputeInterestRate(earthDays, gamma, req.PaymentType)
	if err != nil {
		return domain.TradeQuote{}, err
	}

	cost := ComputeTotalCost(req.Quantity, rate)
	if math.IsInf(cost, 0) {
		return domain.TradeQuote{}, domain.NewTradeError(domain.KindCostOverflow, "",
			"total cost for %d units overflows", req.Quantity)
	}

	return domain.TradeQuote{
		DistanceAU:                   roundTo(distance, DistancePrecision),
		EarthTravelTimeDays:          roundTo(earthDays, TimePrecision),
		ShipTravelTimeDays:           roundTo(shipDays, TimePrecision),
		TimeDilationFactor:           roundTo(gamma, FactorPrecision),
		EffectiveInterestRate:        roundTo(rate, RatePrecision),
		EffectiveInterestRatePercent: roundTo(rate*100, RatePrecision),
		TotalCost:                    roundTo(cost, CostPrecision),
		ShipSpeedRatio:               ratio,
	}, nil
}

func validateShipSpeedRatio(ratio float64) error {
	if math.IsNaN(ratio) || ratio <= 0 || ratio >= 1 {
		return domain.NewTradeError(domain.KindInvalidSpeed, "",
			"ship speed ratio must be in (0, 1), got %v", ratio)
	}
	return nil
}

// roundTo redondea a la cantidad de decimales indicada (half away from zero).
func roundTo(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
