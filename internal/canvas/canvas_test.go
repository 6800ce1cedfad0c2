package canvas_test

import (
	"image/color"
	"slices"
	"testing"

	"github.com/cristianadrielbraun/prettyqr/internal/canvas"
	"github.com/cristianadrielbraun/prettyqr/internal/grid"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

var (
	fg      = color.RGBA{0, 0, 0, 255}
	bg      = color.RGBA{255, 255, 255, 255}
	corners = color.RGBA{255, 0, 0, 255}
)

func parse(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g := grid.New(len(rows))
	for y, row := range rows {
		for x, c := range row {
			g.Set(x, y, c == '#')
		}
	}
	return g
}

func config(n, block, radius int, cornerColor color.RGBA) style.Config {
	return style.Config{
		Foreground:   fg,
		Background:   bg,
		Corners:      cornerColor,
		Modules:      n,
		BlockSize:    block,
		CornerRadius: radius,
		Backend:      style.BackendRasterx,
	}
}

func record(g *grid.Grid, cfg style.Config) []canvas.Command {
	var rec canvas.Recorder
	canvas.Build(g, cfg, &rec)
	return rec.Commands
}

func setColor(c color.RGBA) canvas.Command {
	return canvas.Command{Op: canvas.OpSetColor, Color: c}
}

func rect(x0, y0, x1, y1 float64) canvas.Command {
	return canvas.Command{Op: canvas.OpRectangle, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func rrect(x0, y0, x1, y1, r float64) canvas.Command {
	return canvas.Command{Op: canvas.OpRoundedRectangle, X0: x0, Y0: y0, X1: x1, Y1: y1, RX: r, RY: r}
}

func TestBuild_SingleModule(t *testing.T) {
	g := parse(t,
		"...",
		".#.",
		"...",
	)
	got := record(g, config(3, 10, 3, fg))

	want := []canvas.Command{
		setColor(bg), rect(0, 0, 30, 30), setColor(fg),
		rrect(10, 10, 20, 20, 3),
	}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if x == 1 && y == 1 {
				continue
			}
			x0, y0 := float64(x*10), float64(y*10)
			want = append(want, setColor(bg), rrect(x0+1, y0+1, x0+9, y0+9, 3), setColor(fg))
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("Build() =\n%v\nwant\n%v", got, want)
	}
}

func TestBuild_Bridges(t *testing.T) {
	g := parse(t,
		"...",
		".##",
		".#.",
	)
	got := record(g, config(3, 10, 3, fg))

	for _, c := range []canvas.Command{
		rect(13, 10, 23, 20), // (1,1) -> (2,1)
		rect(10, 13, 20, 23), // (1,1) -> (1,2)
	} {
		if !slices.Contains(got, c) {
			t.Errorf("missing bridge %v", c)
		}
	}
	for _, c := range []canvas.Command{
		rect(23, 10, 33, 20), // right edge
		rect(20, 13, 30, 23), // (2,1) has no dark module below
		rect(10, 23, 20, 33), // bottom edge
	} {
		if slices.Contains(got, c) {
			t.Errorf("unexpected bridge %v", c)
		}
	}
}

func TestBuild_ConcavePatchBeforeCutout(t *testing.T) {
	g := parse(t,
		".##",
		"..#",
		"...",
	)
	got := record(g, config(3, 10, 3, fg))

	patch := slices.Index(got, rect(13, 10, 20, 13))
	cutout := slices.Index(got, rrect(11, 11, 19, 19, 3))
	if patch < 0 {
		t.Fatal("upper-right patch not emitted")
	}
	if cutout < 0 {
		t.Fatal("light cutout not emitted")
	}
	if patch > cutout {
		t.Errorf("patch at %d drawn after cutout at %d", patch, cutout)
	}
	if got[cutout-1] != setColor(bg) {
		t.Errorf("command before cutout = %v, want %v", got[cutout-1], setColor(bg))
	}

	for _, c := range []canvas.Command{
		rect(13, 13, 20, 20),
		rect(10, 13, 13, 20),
		rect(10, 10, 13, 13),
	} {
		if slices.Contains(got, c) {
			t.Errorf("unexpected patch %v", c)
		}
	}
}

func TestBuild_FinderCornerColors(t *testing.T) {
	g := grid.New(21)
	g.Set(0, 0, true)
	got := record(g, config(21, 16, 5, corners))

	i := slices.Index(got, rrect(0, 0, 16, 16, 5))
	if i < 1 {
		t.Fatalf("module (0,0) not drawn")
	}
	if got[i-1] != setColor(corners) {
		t.Errorf("dark finder module color = %v, want %v", got[i-1], setColor(corners))
	}
	if got[i+1] != setColor(fg) {
		t.Errorf("after dark finder module = %v, want %v", got[i+1], setColor(fg))
	}

	// (1,1) is on the light ring of the top-left finder pattern
	j := slices.Index(got, rrect(17, 17, 31, 31, 5))
	if j < 2 {
		t.Fatalf("module (1,1) not drawn")
	}
	if got[j-2] != setColor(corners) || got[j-1] != setColor(bg) {
		t.Errorf("light finder module commands = %v, %v", got[j-2], got[j-1])
	}

	// (10,10) is in the middle of the symbol
	k := slices.Index(got, rrect(161, 161, 175, 175, 5))
	if k < 1 {
		t.Fatalf("module (10,10) not drawn")
	}
	if slices.Contains(got[k-3:k], setColor(corners)) {
		t.Errorf("middle module uses the corners color: %v", got[k-3:k])
	}
}

func TestBuild_NoRedundantColorSwitches(t *testing.T) {
	g := parse(t,
		"#.##.",
		"##..#",
		".#.##",
		"#..#.",
		"##.#.",
	)
	got := record(g, config(5, 8, 2, corners))
	var last *canvas.Command
	for i := range got {
		c := got[i]
		if c.Op != canvas.OpSetColor {
			last = nil
			continue
		}
		if last != nil && last.Color == c.Color {
			t.Errorf("command %d repeats color %v", i, c.Color)
		}
		last = &got[i]
	}
}

func TestBuild_Deterministic(t *testing.T) {
	g := parse(t,
		"#.##.",
		"##..#",
		".#.##",
		"#..#.",
		"##.#.",
	)
	cfg := config(5, 8, 2, corners)
	a, b := record(g, cfg), record(g, cfg)
	if !slices.Equal(a, b) {
		t.Error("two builds of the same grid differ")
	}
}

func TestReplay(t *testing.T) {
	g := parse(t,
		"#.#",
		".##",
		"#..",
	)
	cmds := record(g, config(3, 12, 4, corners))

	var rec canvas.Recorder
	canvas.Replay(cmds, &rec)
	if !slices.Equal(rec.Commands, cmds) {
		t.Error("Replay() did not reproduce the command list")
	}
}

func TestCommandString(t *testing.T) {
	cases := []struct {
		cmd  canvas.Command
		want string
	}{
		{rect(1, 2, 3, 4), "rectangle(1,2,3,4)"},
		{rrect(0, 0, 16, 16, 5), "roundedRectangle(0,0,16,16,5,5)"},
		{setColor(color.RGBA{1, 2, 3, 4}), "setColor({1 2 3 4})"},
	}
	for _, c := range cases {
		if got := c.cmd.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
