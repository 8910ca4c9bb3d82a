package plan

import "math"

// Cable install time: a 20 minute base plus 10 minutes per additional 25 ft.
const (
	cableBaseMinutes   = 20.0
	cableMinutesPer25  = 10.0
	cableFeetIncrement = 25.0
)

// Measure converts a pixel-space cable run into feet (rounded to 0.1, never
// below 1 ft) and install minutes at the given floor scale.
func Measure(start, end Point, scalePxPerFt float64) (lengthFt float64, ttiMin int) {
	if scalePxPerFt < MinScalePxPerFt {
		scalePxPerFt = MinScalePxPerFt
	}
	dist := math.Hypot(end.X-start.X, end.Y-start.Y)
	lengthFt = math.Round(dist/scalePxPerFt*10) / 10
	if lengthFt < 1 {
		lengthFt = 1
	}
	ttiMin = int(math.Round(cableBaseMinutes + lengthFt/cableFeetIncrement*cableMinutesPer25))
	return lengthFt, ttiMin
}

// NewCableRun builds a cable run between two points, measured at the given
// floor scale.
func NewCableRun(start, end Point, scalePxPerFt float64) CableRun {
	lengthFt, ttiMin := Measure(start, end, scalePxPerFt)
	return CableRun{
		ID:       NewID(),
		Start:    start,
		End:      end,
		LengthFt: lengthFt,
		TTIMin:   ttiMin,
	}
}
