package service

const (
	SpeedOfLightKmPerSec   = 299792.458  // km/s
	AUToKm                 = 149597870.7 // 1 AU en km
	SecondsPerDay          = 86400.0
	DaysPerYear            = 365.25
	BaseAnnualInterestRate = 0.05   // 5% anual
	BaseUnitCost           = 1000.0 // precio plano por unidad

	// DefaultShipSpeedRatio is SHIP_SPEED_RATIO, the ship speed as a fraction
	// of c. Older copies of this calculator used 0.0001 and 0.9.
	DefaultShipSpeedRatio = 0.1

	MaxQuantity = 1_000_000_000 // máximo de unidades por cotización

	// Decimales de salida
	DistancePrecision = 2
	TimePrecision     = 2
	CostPrecision     = 2
	FactorPrecision   = 4
	RatePrecision     = 4

	// Límites del asesor
	MaxQuestionLength   = 2000
	MaxRecentQuotes     = 100
	DefaultRecentQuotes = 10
)
