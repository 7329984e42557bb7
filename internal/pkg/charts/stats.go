package charts

import (
	"math"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
)

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// sampleStdDev uses the n-1 denominator.
func sampleStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	m := mean(x)
	var ss float64
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

// pearson returns the Pearson correlation coefficient. ok is false when fewer
// than two pairs exist or either side has zero variance.
func pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, false
	}

	meanX := mean(x)
	meanY := mean(y)

	var sumXY, sumX2, sumY2 float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return 0, false
	}

	r = sumXY / math.Sqrt(sumX2*sumY2)
	return math.Max(-1, math.Min(1, r)), true
}

// histogram splits [min, max] into equal-width bins, last bin closed on the right.
// A single distinct value is centred in [v-0.5, v+0.5].
func histogram(values []float64, bins int) []entity.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]entity.HistogramBin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// kde evaluates a Gaussian kernel density estimate with Scott's bandwidth over
// [min, max] and scales it to histogram counts. It returns nil when the
// bandwidth is undefined (fewer than two values or no spread).
func kde(values []float64, points int, binWidth float64) []entity.CurvePoint {
	n := len(values)
	sd := sampleStdDev(values)
	if n < 2 || sd == 0 || points < 2 {
		return nil
	}
	bw := sd * math.Pow(float64(n), -1.0/5.0)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	norm := 1 / (float64(n) * bw * math.Sqrt(2*math.Pi))
	scale := float64(n) * binWidth
	step := (hi - lo) / float64(points-1)

	out := make([]entity.CurvePoint, points)
	for i := range out {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			u := (x - v) / bw
			sum += math.Exp(-0.5 * u * u)
		}
		out[i] = entity.CurvePoint{X: x, Y: sum * norm * scale}
	}
	return out
}
