package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/delaneyj/statewire"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting statewire stress run, please wait...")
	defer log.Print("Finished statewire stress run")

	cfgs := []stressConfig{
		{
			name:         "simple component",
			width:        10,
			totalLayers:  5,
			nSources:     2,
			readFraction: 0.2,
			iterations:   100_000,
		},
		{
			name:         "large web app",
			width:        1_000,
			totalLayers:  12,
			nSources:     4,
			readFraction: 1,
			iterations:   2_000,
		},
		{
			name:         "wide dense",
			width:        1_000,
			totalLayers:  5,
			nSources:     25,
			readFraction: 1,
			iterations:   1_000,
		},
		{
			name:         "deep",
			width:        5,
			totalLayers:  500,
			nSources:     3,
			readFraction: 1,
			iterations:   500,
		},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"size", "nSources", "read%",
		"nTimes", "test", "time",
		"recomputes", "updateRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		best := stressResult{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)

			counter := new(int64)
			rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
				log.Panic(err)
			})
			graph := makeStressGraph(rs, cfg, counter)
			rng := rand.New(rand.NewSource(42))

			start := time.Now()
			sum := runStressGraph(graph, cfg, rng)
			duration := time.Since(start)

			if duration < best.duration {
				best.duration = duration
				best.sum = sum
				best.count = *counter
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		tbl.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
		})
	}
	tbl.Render()
}

type stressConfig struct {
	name         string  // friendly name for the test, should be unique
	width        int     // width of the dependency graph to construct
	totalLayers  int     // depth of the dependency graph to construct
	nSources     int     // number of previous-layer reads per derived key
	readFraction float64 // fraction of last-layer keys read per iteration
	iterations   int64   // number of write+read rounds
}

type stressResult struct {
	sum      int
	count    int64
	duration time.Duration
}

type stressGraph struct {
	store     *statewire.Store
	sources   []string
	lastLayer []string
}

func makeStressGraph(rs *statewire.ReactiveSystem, cfg stressConfig, counter *int64) *stressGraph {
	target := map[string]any{}
	prev := make([]string, cfg.width)
	for i := range prev {
		prev[i] = fmt.Sprintf("s%d", i)
		target[prev[i]] = i
	}
	s := statewire.Wrap(rs, target)
	sources := prev

	for l := 0; l < cfg.totalLayers; l++ {
		next := make([]string, cfg.width)
		for i := 0; i < cfg.width; i++ {
			key := fmt.Sprintf("l%d_%d", l, i)
			deps := make([]string, cfg.nSources)
			for k := 0; k < cfg.nSources; k++ {
				deps[k] = prev[(i+k)%cfg.width]
			}
			statewire.Computed(s, key, func(s *statewire.Store) any {
				*counter++
				sum := 0
				for _, dep := range deps {
					sum += s.GetInt(dep)
				}
				return sum
			})
			next[i] = key
		}
		prev = next
	}

	return &stressGraph{store: s, sources: sources, lastLayer: prev}
}

func runStressGraph(g *stressGraph, cfg stressConfig, rng *rand.Rand) int {
	sum := 0
	for i := int64(0); i < cfg.iterations; i++ {
		src := g.sources[int(i)%len(g.sources)]
		g.store.Set(src, int(i))

		for _, key := range g.lastLayer {
			if cfg.readFraction >= 1 || rng.Float64() < cfg.readFraction {
				sum += g.store.GetInt(key)
			}
		}
	}
	return sum
}
