// SPDX-License-Identifier: MIT

package iaa

import (
	"log/slog"
	"math"
)

// kappa returns (agreement − pe)/(1 − pe). A chance agreement of exactly 1
// leaves kappa undefined; it is reported as NaN with a warning.
func kappa(agreement, pe float64, log *slog.Logger) float64 {
	if pe == 1 {
		log.Warn("chance agreement is 1, kappa undefined", "agreement", agreement)
		return math.NaN()
	}

	return (agreement - pe) / (1 - pe)
}
