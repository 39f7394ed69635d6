package eventmodels

import (
	"math"
	"strconv"
	"time"
)

// TimestampLayout is the canonical trade timestamp written to the journal.
const TimestampLayout = "2006-01-02T15:04:05"

// LotTolerance is the quantity below which an open lot counts as exhausted.
// Quantities are floats, so repeated partial closes leave residue.
const LotTolerance = 1e-9

// ChronologyTolerance is how far a sell may precede the lot it closes before
// the match is refused. Broker exports only carry whole seconds.
const ChronologyTolerance = time.Second

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func Float64(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}

// FormatFloat renders v without trailing zeros; nil renders as "".
func FormatFloat(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func FormatInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}
