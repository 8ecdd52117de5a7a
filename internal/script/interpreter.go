package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/image-manip-mcp/internal/engine"
	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

// ErrUnknownCommand is returned for a command name that does not exist or is
// given the wrong number of arguments. Such errors also wrap
// imaging.ErrInvalidArgument, so they classify as imaging.Malformed.
var ErrUnknownCommand = errors.New("unknown command")

// maxRunDepth bounds nested run commands so a script cannot run itself forever.
const maxRunDepth = 16

// Interpreter executes commands against an engine, writing command output and
// success messages to out.
type Interpreter struct {
	eng    *engine.Engine
	out    io.Writer
	logger *zap.Logger
	depth  int
}

// New creates an interpreter. A nil logger disables logging.
func New(eng *engine.Engine, out io.Writer, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{eng: eng, out: out, logger: logger.Named("script")}
}

// Exec runs a single command line. Blank and comment lines do nothing.
func (in *Interpreter) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w %q: %w", ErrUnknownCommand, name, imaging.ErrInvalidArgument)
	}
	if !cmd.accepts(len(args)) {
		return fmt.Errorf("%w: %w: usage: %s", ErrUnknownCommand, imaging.ErrInvalidArgument, cmd.usage)
	}

	in.logger.Debug("executing command", zap.String("command", name), zap.Strings("args", args))
	if err := cmd.run(in, args); err != nil {
		return err
	}
	if cmd.label != "" {
		fmt.Fprintf(in.out, "%s successful!\n", cmd.label)
	}
	return nil
}

// Run executes every line read from r, stopping at the first failure. The
// returned error carries the failing line number.
func (in *Interpreter) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if isQuit(line) {
			return nil
		}
		if err := in.Exec(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: failed to read script: %w", imaging.ErrCodecIO, err)
	}
	return nil
}

// RunFile executes the script stored at path.
func (in *Interpreter) RunFile(path string) error {
	if in.depth >= maxRunDepth {
		return fmt.Errorf("%w: scripts nested deeper than %d", imaging.ErrInvalidArgument, maxRunDepth)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: failed to open script: %w", imaging.ErrCodecIO, err)
	}
	defer f.Close()

	in.depth++
	defer func() { in.depth-- }()

	in.logger.Info("running script", zap.String("path", path))
	if err := in.Run(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Interactive reads commands from r until "Q", "q" or end of input. Failures
// are printed and the session continues.
func (in *Interpreter) Interactive(r io.Reader) error {
	fmt.Fprintln(in.out, "Enter image commands (help lists them, Q quits):")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if isQuit(line) {
			break
		}
		if err := in.Exec(line); err != nil {
			fmt.Fprintf(in.out, "Error: %v\n", err)
			in.logger.Debug("command failed", zap.Stringer("class", imaging.Classify(err)), zap.Error(err))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}

	fmt.Fprintln(in.out, "Goodbye.")
	return nil
}

func (in *Interpreter) printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(in.out, "Supported commands:")
	for _, name := range names {
		fmt.Fprintf(in.out, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(in.out, "  Q")
}

func isQuit(line string) bool {
	return line == "Q" || line == "q"
}
