package budget

import "errors"

var (
	ErrInvalidMonthFormat = errors.New("invalid month format, use 'YYYY-MM' (e.g. 2026-02)")
	ErrInvalidAmount      = errors.New("amounts must be numbers")
	ErrAmountTooLarge     = errors.New("amount too large")
	ErrMissingCategory    = errors.New("each expense item must have a non-empty 'category'")
	ErrNotFound           = errors.New("no budget saved for this month")
	ErrInvalidRange       = errors.New("'from' month is after 'to' month")
)
