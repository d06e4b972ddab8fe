package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Sessions int
	Seed     uint64
	Width    int
	Height   int

	// Results
	TotalCommands  int64
	TotalEvents    int64
	TotalTime      time.Duration
	Games          int
	Lines          int
	BestScore      int
	Stats          tetris.Stats
	StepTime       Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// Merge folds worker results into the report and finalizes step timings.
func (r *Report) Merge(results []Result) {
	for _, res := range results {
		r.TotalCommands += res.Commands
		r.TotalEvents += res.Events
		r.Games += res.Games
		r.Lines += res.Lines
		r.BestScore = max(r.BestScore, res.Best)
		for t, n := range res.Stats.Dealt {
			r.Stats.Dealt[t] += n
		}
		r.Stats.PiecesLocked += res.Stats.PiecesLocked
		r.Stats.Singles += res.Stats.Singles
		r.Stats.Doubles += res.Stats.Doubles
		r.Stats.Triples += res.Stats.Triples
		r.Stats.Tetrises += res.Stats.Tetrises
		r.Stats.HardDrops += res.Stats.HardDrops
		r.Stats.Holds += res.Stats.Holds
		r.Stats.SoftDropRows += res.Stats.SoftDropRows
		r.StepTime.Samples = append(r.StepTime.Samples, res.Step.Samples...)
	}
	r.StepTime.Finalize()
}

// Dealt pairs each piece type with its deal count, in catalog order.
func (r *Report) Dealt() []DealtRow {
	rows := make([]DealtRow, 0, len(tetris.AllPieceTypes))
	total := r.Stats.TotalDealt()
	for _, t := range tetris.AllPieceTypes {
		row := DealtRow{Type: t, Count: r.Stats.Dealt[t]}
		if total > 0 {
			row.Share = float64(row.Count) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

type DealtRow struct {
	Type  tetris.PieceType
	Count int
	Share float64
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Parallel Sessions:** {{.Sessions}}
- **Base Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}

## Performance Results
- **Total Commands:** {{.TotalCommands}}
- **Total Events:** {{.TotalEvents}}
- **Total Test Time:** {{.TotalTime}}
- **Step Time (Command + Tick):**
  - **Avg:** {{.StepTime.Avg}}
  - **P99:** {{.StepTime.P99}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Gameplay
- **Games Finished:** {{.Games}}
- **Lines Cleared:** {{.Lines}}
- **Best Score:** {{.BestScore}}
- **Pieces Locked:** {{.Stats.PiecesLocked}}
- **Clears:** {{.Stats.Singles}} single, {{.Stats.Doubles}} double, {{.Stats.Triples}} triple, {{.Stats.Tetrises}} tetris
- **Hard Drops:** {{.Stats.HardDrops}}
- **Holds:** {{.Stats.Holds}}

| Piece | Dealt | Share |
|-------|-------|-------|
{{range .Dealt}}| {{.Type}} | {{.Count}} | {{pct .Share}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB)
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
