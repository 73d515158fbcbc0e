package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// SessionWindow shows the state of the active session.
type SessionWindow struct {
	source Source
}

func (w *SessionWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 320), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("State: %v", w.source.State()))
	imgui.Text(fmt.Sprintf("Sessions: %d", w.source.Sessions()))
	imgui.Text(fmt.Sprintf("Last score: %d  Best: %d", w.source.LastScore(), w.source.BestScore()))

	s := w.source.Session()
	if s == nil {
		imgui.Separator()
		imgui.Text("No active session")
		imgui.End()
		return
	}

	sn := s.Snake()
	food := s.Food()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Session #%d  bounds %v", s.ID(), s.Bounds()))
	imgui.Text(fmt.Sprintf("Score: %d  Steps: %d  Frames: %d", s.Score(), s.Steps(), s.Frames()))
	imgui.Text(fmt.Sprintf("Elapsed: %v  Iteration gap: %v", s.Elapsed().Round(time.Millisecond), s.Delta()))
	imgui.Text(fmt.Sprintf("Head: %v  Length: %d", sn.Head(), sn.Len()))
	imgui.Text(fmt.Sprintf("Direction: %v  Pending: %v", sn.Direction(), sn.PendingDirection()))
	imgui.Text(fmt.Sprintf("Speed: %v  Next move: %v", sn.Speed(), sn.NextMoveTime()))
	imgui.Text(fmt.Sprintf("Food: %v at %v", food.Kind, food.Cell))
	imgui.Text(fmt.Sprintf("Self collision: %t", sn.CheckSelfCollision()))

	if imgui.TreeNodeStr("Segments") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SegmentsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("#")
			imgui.TableSetupColumn("X")
			imgui.TableSetupColumn("Y")
			imgui.TableHeadersRow()

			for i, c := range sn.All() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", i))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.X))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Y))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
