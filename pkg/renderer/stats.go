package renderer

import (
	"sync/atomic"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the current or most recent pass
type RenderStats struct {
	Generation    uint64                      // Pass generation number
	TotalPixels   int                         // Pixels in the image
	PixelsWritten int                         // Pixels shaded by this pass so far
	Outcomes      [integrator.NumOutcomes]int // Histogram of ray outcomes
	Failures      int                         // Pixels that ended on a sentinel outcome
	AverageSteps  float64                     // Mean integration steps per shaded pixel
	Elapsed       time.Duration               // Time since start, or total time once finished
	Done          bool                        // All workers have exited
	Cancelled     bool                        // Finished without shading every pixel
}

// passStats accumulates per-pixel results from all workers of one pass
type passStats struct {
	written   atomic.Int64
	steps     atomic.Int64
	tilesDone atomic.Int64
	outcomes  [integrator.NumOutcomes]atomic.Int64
}

func (ps *passStats) record(result integrator.Result) {
	ps.written.Add(1)
	ps.steps.Add(int64(result.Steps))
	if o := int(result.Outcome); o >= 0 && o < integrator.NumOutcomes {
		ps.outcomes[o].Add(1)
	}
}

// snapshot copies the counters into a RenderStats
func (ps *passStats) snapshot(totalPixels int) RenderStats {
	stats := RenderStats{
		TotalPixels:   totalPixels,
		PixelsWritten: int(ps.written.Load()),
	}
	for i := range ps.outcomes {
		stats.Outcomes[i] = int(ps.outcomes[i].Load())
		if integrator.Outcome(i).IsFailure() {
			stats.Failures += stats.Outcomes[i]
		}
	}
	if stats.PixelsWritten > 0 {
		stats.AverageSteps = float64(ps.steps.Load()) / float64(stats.PixelsWritten)
	}
	return stats
}
