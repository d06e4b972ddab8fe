package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// previewCount is how many upcoming pieces the inspector lists.
const previewCount = 5

// SessionInspector shows the live state of a session and offers the
// command surface as buttons.
type SessionInspector struct {
	session *tetris.Session
}

func NewSessionInspector(s *tetris.Session) *SessionInspector {
	return &SessionInspector{session: s}
}

// Summary returns the headline numbers shown at the top of the panel.
func (si *SessionInspector) Summary() []string {
	s := si.session
	held := "-"
	if t, ok := s.Held(); ok {
		held = t.String()
	}
	cur := s.Current()
	return []string{
		fmt.Sprintf("State: %s", s.State()),
		fmt.Sprintf("Score: %d  Lines: %d  Level: %d", s.Score(), s.Lines(), s.Level()),
		fmt.Sprintf("Fall interval: %s", s.FallInterval()),
		fmt.Sprintf("Current: %s at (%d,%d) rot %d", cur.Type, cur.X, cur.Y, cur.Rotation),
		fmt.Sprintf("Ghost row: %d", s.Ghost().Y),
		fmt.Sprintf("Next: %s  Held: %s  Can hold: %t", s.Next(), held, s.CanHold()),
		fmt.Sprintf("Upcoming: %s", joinTypes(s.Upcoming(previewCount))),
	}
}

func joinTypes(types []tetris.PieceType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}

// Render draws the inspector window.
func (si *SessionInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 520), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := si.session
	for _, line := range si.Summary() {
		imgui.Text(line)
	}

	imgui.Separator()
	if imgui.Button("Pause/Resume") {
		s.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		s.Restart()
	}
	imgui.SameLine()
	if imgui.Button("Hold") {
		s.Hold()
	}
	imgui.SameLine()
	if imgui.Button("Drop") {
		s.HardDrop()
	}

	if imgui.TreeNodeStr("Board") {
		for _, row := range strings.Split(strings.TrimRight(s.Board().String(), "\n"), "\n") {
			imgui.Text(row)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Dealt") {
		stats := s.Stats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("DealtTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Piece")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()
			for _, t := range tetris.AllPieceTypes {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(t.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.Dealt[t]))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	Inspect("Stats", s.Stats())
	Inspect("Config", s.Config())
	Inspect("Snapshot", s.Snapshot())

	imgui.End()
}
