package orbital

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups the sweep errors registered below.
const Codespace = "rsky"

var (
	ErrDegenerateOrbit = errorsmod.Register(Codespace, 2, "degenerate orbital elements")
	ErrNonConvergence  = errorsmod.Register(Codespace, 3, "kepler equation did not converge")
	ErrLengthMismatch  = errorsmod.Register(Codespace, 4, "separation length does not match time axis")
	ErrInvalidGrid     = errorsmod.Register(Codespace, 5, "invalid parameter grid")
)
