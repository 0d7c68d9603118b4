package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/statewire"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkPropagation(true)
	benchmarkBatchFanout(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

func benchmarkPropagation(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Statewire Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {

			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
				log.Panic(err)
			})
			s := statewire.Wrap(rs, map[string]any{"src": 1})
			for i := 0; i < w; i++ {
				prev := "src"
				for j := 0; j < h; j++ {
					key := fmt.Sprintf("c%d_%d", i, j)
					dep := prev
					statewire.Computed(s, key, func(s *statewire.Store) any {
						return s.Get(dep).(int) + 1
					})
					prev = key
				}

				last := prev
				statewire.Effect(rs, func() error {
					s.Get(last)
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				s.Set("src", s.GetInt("src")+1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkBatchFanout(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Statewire Batch Fanout")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
			log.Panic(err)
		})

		target := map[string]any{}
		keys := make([]string, w)
		for i := 0; i < w; i++ {
			keys[i] = fmt.Sprintf("k%d", i)
			target[keys[i]] = 0
		}
		s := statewire.Wrap(rs, target)

		statewire.Effect(rs, func() error {
			for _, key := range keys {
				s.Get(key)
			}
			return nil
		})

		for i := 0; i < iters; i++ {
			start := time.Now()
			rs.Batch(func() {
				for _, key := range keys {
					s.Set(key, i+1)
				}
			})
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("batch fanout: %d keys", w),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
