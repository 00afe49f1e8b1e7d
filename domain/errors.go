package domain

import "fmt"

type ErrorKind string

const (
	KindUnknownBody        ErrorKind = "UnknownBodyError"
	KindSameBody           ErrorKind = "SameBodyError"
	KindInvalidQuantity    ErrorKind = "InvalidQuantityError"
	KindInvalidPaymentType ErrorKind = "InvalidPaymentTypeError"
	KindInvalidSpeed       ErrorKind = "InvalidSpeedError"
	KindCostOverflow       ErrorKind = "CostOverflowError"
)

// TradeError is a validation failure raised while quoting. Key holds the
// offending input (body name, payment type) when there is one.
type TradeError struct {
	Kind    ErrorKind
	Message string
	Key     string
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *TradeError with the same Kind, so callers can write
// errors.Is(err, &domain.TradeError{Kind: domain.KindSameBody}).
func (e *TradeError) Is(target error) bool {
	t, ok := target.(*TradeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewTradeError(kind ErrorKind, key string, format string, args ...any) *TradeError {
	return &TradeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Key:     key,
	}
}
