package fines

import "errors"

var (
	// ErrNegativeRevenue is returned when a revenue figure below zero is supplied
	ErrNegativeRevenue = errors.New("revenue must not be negative")
)
