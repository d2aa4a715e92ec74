package service

import "errors"

// Business errors surfaced to the handler layer. Not-found and invalid-state
// conditions reject the operation before any mutation is applied.
var (
	ErrHospitalNotFound     = errors.New("hospital not found")
	ErrRosterNotFound       = errors.New("roster not found")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrSwapNotFound         = errors.New("swap request not found")

	// ErrShiftUnassigned rejects a swap request on a shift with no owner.
	ErrShiftUnassigned = errors.New("shift has no assigned professional")
	// ErrSwapAlreadyResolved rejects approving or rejecting a request that
	// already reached a terminal state.
	ErrSwapAlreadyResolved = errors.New("swap request already resolved")

	ErrInvalidCredentials = errors.New("invalid email or password")
)
