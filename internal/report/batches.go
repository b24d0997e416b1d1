package report

import (
	"image/color"
	"math"
	"sync"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"github.com/destel/montecarlo"
)

const histBins = 50

// BatchMeans collects the mean of every merged batch. Observe is meant to be used as a run observer.
type BatchMeans struct {
	mu    sync.Mutex
	means []float64
	min   float64
	max   float64
}

func NewBatchMeans() *BatchMeans {
	return &BatchMeans{min: math.Inf(1), max: math.Inf(-1)}
}

func (b *BatchMeans) Observe(batch, _ montecarlo.Accumulator) {
	m := batch.Mean()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.means = append(b.means, m)
	b.min = math.Min(b.min, m)
	b.max = math.Max(b.max, m)
}

// Histogram returns a histogram of the batch means, or nil if nothing was observed.
func (b *BatchMeans) Histogram() *hbook.H1D {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.means) == 0 {
		return nil
	}

	lo, hi := b.min, b.max
	if hi <= lo {
		// all means are equal, give the single bin some width
		lo, hi = lo-0.5, hi+0.5
	} else {
		pad := (hi - lo) * 1e-6
		lo, hi = lo-pad, hi+pad
	}

	h := hbook.NewH1D(histBins, lo, hi)
	for _, m := range b.means {
		h.Fill(m, 1)
	}

	return h
}

// Summary describes the distribution of the batch means, or returns nil if nothing was observed.
func (b *BatchMeans) Summary() *BatchMeansSummary {
	h := b.Histogram()
	if h == nil {
		return nil
	}

	return &BatchMeansSummary{
		Count:  h.Entries(),
		Mean:   h.XMean(),
		StdDev: h.XStdDev(),
		StdErr: h.XStdErr(),
	}
}

// SavePlot renders the histogram of batch means into an image file. The format follows the file extension.
func (b *BatchMeans) SavePlot(file string) error {
	h := b.Histogram()
	if h == nil {
		return nil
	}

	p := hplot.New()
	p.Title.Text = "Batch means"
	p.X.Label.Text = "mean"
	p.Y.Label.Text = "batches"
	hh := hplot.NewH1D(h)
	hh.Color = color.NRGBA{0, 0, 255, 255}
	p.Add(hh, hplot.NewGrid())

	const (
		width  = 10 * vg.Centimeter
		height = -1 // choose height automatically
	)
	return p.Save(width, height, file)
}
