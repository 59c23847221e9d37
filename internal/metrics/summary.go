package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Ticks          int     `json:"ticks"`
	MeanLive       float64 `json:"mean_live"`
	StdDevLive     float64 `json:"stddev_live"`
	P95Live        float64 `json:"p95_live"`
	PeakLive       uint32  `json:"peak_live"`
	MeanTickMicros float64 `json:"mean_tick_us"`
	P95TickMicros  float64 `json:"p95_tick_us"`
	Spawned        uint64  `json:"spawned"`
	Rejected       uint64  `json:"rejected"`
	Overflow       uint64  `json:"overflow"`
}

func Summarize(samples []TickSample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	live := make([]float64, len(samples))
	tick := make([]float64, len(samples))
	var peak uint32
	for i, s := range samples {
		live[i] = float64(s.Live)
		tick[i] = float64(s.TickMicros)
		peak = max(peak, s.Live)
	}

	last := samples[len(samples)-1]
	sum := Summary{
		Ticks:    len(samples),
		PeakLive: peak,
		Spawned:  last.Spawned,
		Rejected: last.Rejected,
		Overflow: last.Overflow,
	}
	sum.MeanLive, sum.StdDevLive = stat.MeanStdDev(live, nil)
	sum.MeanTickMicros = stat.Mean(tick, nil)

	sort.Float64s(live)
	sort.Float64s(tick)
	sum.P95Live = stat.Quantile(0.95, stat.Empirical, live, nil)
	sum.P95TickMicros = stat.Quantile(0.95, stat.Empirical, tick, nil)

	return sum
}

// Map flattens the summary for storage metadata and tabular output.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"ticks":        float64(s.Ticks),
		"mean_live":    s.MeanLive,
		"stddev_live":  s.StdDevLive,
		"p95_live":     s.P95Live,
		"peak_live":    float64(s.PeakLive),
		"mean_tick_us": s.MeanTickMicros,
		"p95_tick_us":  s.P95TickMicros,
		"spawned":      float64(s.Spawned),
		"rejected":     float64(s.Rejected),
		"overflow":     float64(s.Overflow),
	}
}
