// Command stress drives the engine through full-dataset scroll sweeps and
// reports tick throughput, pool churn and offset-estimate drift.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fulldump/goconfig"
	"golang.org/x/term"

	"vlist"
)

type config struct {
	Items        int   `usage:"dataset size"`
	Buffer       int   `usage:"extra rows kept live on each side of the viewport"`
	Viewport     int   `usage:"viewport height in pixels (0 = derive from terminal)"`
	RebuildEvery int   `usage:"measurements between offset-index rebuilds (-1 disables)"`
	Sweeps       int   `usage:"full top-to-bottom scroll passes"`
	Steps        int   `usage:"scroll positions per sweep"`
	Seed         int64 `usage:"height noise seed"`
}

type node struct {
	item   int
	height float64
}

func main() {
	cfg := config{
		Items:        1_000_000,
		Buffer:       5,
		RebuildEvery: 256,
		Sweeps:       3,
		Steps:        5_000,
		Seed:         1,
	}
	goconfig.Read(&cfg)

	if cfg.Viewport <= 0 {
		cfg.Viewport = 600
		if _, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && rows > 0 {
			cfg.Viewport = rows * 16 // assume 16px rows on a real screen
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	heights := make([]float64, cfg.Items)
	for i := range heights {
		heights[i] = float64(16 + rng.Intn(64))
	}

	e := vlist.NewEngine[*node](cfg.Items, vlist.Config{
		Buffer:          cfg.Buffer,
		EstimatedHeight: 32,
		RebuildEvery:    cfg.RebuildEvery,
	})
	e.Alloc = func() *node { return &node{item: -1} }
	e.Bind = func(n *node, i int) {
		n.item = i
		n.height = heights[i]
	}
	e.Measure = func(n *node) (float64, bool) {
		if n.item < 0 {
			return 0, false
		}
		return n.height, true
	}
	e.SetViewport(float64(cfg.Viewport))
	e.Tick()

	fmt.Printf("stress: %d items, viewport %dpx, buffer %d, rebuild every %d\n",
		cfg.Items, cfg.Viewport, cfg.Buffer, cfg.RebuildEvery)

	ticks := 0
	changes := 0
	start := time.Now()
	for sweep := 0; sweep < cfg.Sweeps; sweep++ {
		maxScroll := e.MaxScroll()
		for s := 0; s < cfg.Steps; s++ {
			e.SetScroll(maxScroll * float64(s) / float64(cfg.Steps))
			if e.Tick() {
				changes++
			}
			ticks++
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("  %d ticks in %v (%.0f ticks/sec), %d window changes\n",
		ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds(), changes)
	fmt.Printf("  pool: %d constructed, %d live, %d pooled\n",
		e.Pool().Allocs(), e.Pool().LiveCount(), e.Pool().FreeCount())

	fmt.Printf("  estimate drift before rebuild: %.3fpx\n", drift(e))
	e.Index().Rebuild()
	fmt.Printf("  estimate drift after rebuild:  %.3fpx\n", drift(e))
}

// drift reports how far the per-item estimate sits from the mean of what has
// actually been measured: the price of batching re-bases instead of
// rebuilding per measurement.
func drift(e *vlist.Engine[*node]) float64 {
	d := e.Index().MeanMeasuredHeight() - e.Index().EstimatedHeight()
	if d < 0 {
		d = -d
	}
	return d
}
