package script

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

type command struct {
	// label names the command in its success message; empty means silent.
	label string
	usage string
	// arity lists the accepted argument counts.
	arity []int
	run   func(in *Interpreter, args []string) error
}

// commands is populated in init because run and help refer back to it.
var commands map[string]command

func init() {
	commands = map[string]command{
		"load": {"Load", "load <path> <name>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Load(a[0], a[1])
		}},
		"save": {"Save", "save <path> <name>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Save(a[0], a[1])
		}},
		"brighten": {"Brighten", "brighten <increment> <src> <dst>", []int{3}, func(in *Interpreter, a []string) error {
			delta, err := strconv.Atoi(a[0])
			if err != nil {
				return fmt.Errorf("%w: increment %q is not an integer", imaging.ErrInvalidArgument, a[0])
			}
			return in.eng.Brighten(delta, a[1], a[2])
		}},
		"horizontal-flip": {"Horizontal flip", "horizontal-flip <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.HorizontalFlip(a[0], a[1])
		}},
		"vertical-flip": {"Vertical flip", "vertical-flip <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.VerticalFlip(a[0], a[1])
		}},
		"greyscale": {"Greyscale", "greyscale [<component>] <src> <dst>", []int{2, 3}, func(in *Interpreter, a []string) error {
			if len(a) == 2 {
				return in.eng.Greyscale(imaging.LumaComponent, a[0], a[1])
			}
			return in.eng.Greyscale(imaging.Component(a[0]), a[1], a[2])
		}},
		"rgb-split": {"RGB split", "rgb-split <src> <red-dst> <green-dst> <blue-dst>", []int{4}, func(in *Interpreter, a []string) error {
			return in.eng.RGBSplit(a[0], a[1], a[2], a[3])
		}},
		"rgb-combine": {"RGB combine", "rgb-combine <dst> <red-src> <green-src> <blue-src>", []int{4}, func(in *Interpreter, a []string) error {
			return in.eng.RGBCombine(a[0], a[1], a[2], a[3])
		}},
		"blur": {"Blur", "blur <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Blur(a[0], a[1])
		}},
		"sharpen": {"Sharpen", "sharpen <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Sharpen(a[0], a[1])
		}},
		"sepia": {"Sepia", "sepia <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Sepia(a[0], a[1])
		}},
		"dither": {"Dither", "dither <src> <dst>", []int{2}, func(in *Interpreter, a []string) error {
			return in.eng.Dither(a[0], a[1])
		}},
		"list": {"", "list", []int{0}, func(in *Interpreter, _ []string) error {
			for _, name := range in.eng.Names() {
				fmt.Fprintln(in.out, name)
			}
			return nil
		}},
		"help": {"", "help", []int{0}, func(in *Interpreter, _ []string) error {
			in.printUsage()
			return nil
		}},
		"run": {"", "run <script-file>", []int{1}, func(in *Interpreter, a []string) error {
			return in.RunFile(a[0])
		}},
	}
}

func (c command) accepts(n int) bool {
	for _, a := range c.arity {
		if a == n {
			return true
		}
	}
	return false
}
