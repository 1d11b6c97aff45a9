package core

import "errors"

var (
	// Construction
	ErrNoModule     = errors.New("no_module")
	ErrNoDataPin    = errors.New("no_data_pin")
	ErrModuleBusy   = errors.New("module_busy")
	ErrDivisorRange = errors.New("divisor_out_of_range")
	ErrPinBusy      = errors.New("pin_busy")

	// Ownership transfer
	ErrInvalidHandle = errors.New("invalid_handle")
	ErrMoveConflict  = errors.New("move_conflict")
)
