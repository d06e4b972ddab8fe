package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/fx"
)

// PerformanceStats tracks frame times and shows the effects scheduler's
// per-system timings.
type PerformanceStats struct {
	scheduler     *fx.Scheduler
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
	plotBuffer    []float32
}

func NewPerformanceStats(scheduler *fx.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler:     scheduler,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		plotBuffer:    make([]float32, historyFrames),
	}
}

// Record adds one frame's delta time in seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.recorded)
}

// History returns the recorded frame times oldest first.
func (ps *PerformanceStats) History() []float32 {
	n := copy(ps.plotBuffer, ps.frameHistory[ps.frameIndex:])
	copy(ps.plotBuffer[n:], ps.frameHistory[:ps.frameIndex])
	return ps.plotBuffer[ps.historyFrames-ps.recorded:]
}

// Render draws the performance window.
func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(360, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	world := ps.scheduler.World()
	imgui.Text(fmt.Sprintf("Effects: %d (particles %d, sparks %d, text %d)",
		world.Len(), world.Count(fx.KindParticle), world.Count(fx.KindSpark), world.Count(fx.KindText)))

	if history := ps.History(); len(history) > 0 {
		if implot.BeginPlotV("Frame Time (ms)", imgui.NewVec2(-1, 150), 0) {
			implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("frame", &history[0], int32(len(history)))
			implot.EndPlot()
		}
	}

	stats := ps.scheduler.GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Scheduler: %d systems, %d frames", stats.SystemCount, stats.Frames))
	imgui.Text(fmt.Sprintf("Particles: %d (peak %d)", stats.Particles, stats.PeakParticles))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.LastDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.MaxDuration))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
}
