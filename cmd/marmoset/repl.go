package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/marmoset-lang/marmoset"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()
		return runRepl(cmd.Context())
	},
}

var (
	promptColor = color.New(color.FgYellow, color.Bold)
	numberColor = color.New(color.FgYellow)
	stringColor = color.New(color.FgGreen)
	boolColor   = color.New(color.FgMagenta)
	typeColor   = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
)

type repl struct {
	ctx         context.Context
	interp      *marmoset.Interpreter
	buffer      []rune
	cursor      int
	pending     string // earlier lines of a multi-line input
	history     []string
	historyIdx  int
	historyPath string
	showTiming  bool
}

func runRepl(ctx context.Context) error {
	history, historyPath := loadHistory()
	r := &repl{
		ctx:         ctx,
		interp:      marmoset.NewInterpreter(getOptions()...),
		history:     history,
		historyIdx:  -1,
		historyPath: historyPath,
	}

	fmt.Printf("Marmoset %s\n", version)
	typeColor.Println("Type :help for help, :quit to exit.")
	r.redraw()

	return keyboard.Listen(r.handleKey)
}

func (r *repl) prompt() string {
	if r.pending != "" {
		return "... "
	}
	return ">>> "
}

// redraw repaints the current input line and positions the cursor.
func (r *repl) redraw() {
	fmt.Print("\r\033[K")
	promptColor.Print(r.prompt())
	fmt.Print(string(r.buffer))
	if back := len(r.buffer) - r.cursor; back > 0 {
		fmt.Printf("\033[%dD", back)
	}
}

func (r *repl) handleKey(key keys.Key) (bool, error) {
	switch key.Code {
	case keys.RuneKey:
		r.insert(key.Runes)
	case keys.Space:
		r.insert([]rune{' '})
	case keys.Tab:
		r.insert([]rune{' ', ' '})
	case keys.Backspace:
		if r.cursor > 0 {
			r.buffer = append(r.buffer[:r.cursor-1], r.buffer[r.cursor:]...)
			r.cursor--
		}
	case keys.Delete:
		if r.cursor < len(r.buffer) {
			r.buffer = append(r.buffer[:r.cursor], r.buffer[r.cursor+1:]...)
		}
	case keys.Left:
		if r.cursor > 0 {
			r.cursor--
		}
	case keys.Right:
		if r.cursor < len(r.buffer) {
			r.cursor++
		}
	case keys.Home, keys.CtrlA:
		r.cursor = 0
	case keys.End, keys.CtrlE:
		r.cursor = len(r.buffer)
	case keys.CtrlU:
		r.buffer = append([]rune{}, r.buffer[r.cursor:]...)
		r.cursor = 0
	case keys.Up:
		r.historyBack()
	case keys.Down:
		r.historyForward()
	case keys.CtrlL:
		fmt.Print("\033[2J\033[H")
	case keys.CtrlC:
		if len(r.buffer) == 0 && r.pending == "" {
			fmt.Println()
			return true, nil
		}
		fmt.Println("^C")
		r.buffer = nil
		r.cursor = 0
		r.pending = ""
	case keys.CtrlD:
		fmt.Println()
		return true, nil
	case keys.Enter:
		return r.handleEnter()
	}
	r.redraw()
	return false, nil
}

func (r *repl) insert(runes []rune) {
	r.buffer = append(r.buffer[:r.cursor], append(append([]rune{}, runes...), r.buffer[r.cursor:]...)...)
	r.cursor += len(runes)
}

func (r *repl) historyBack() {
	if len(r.history) == 0 {
		return
	}
	if r.historyIdx == -1 {
		r.historyIdx = len(r.history) - 1
	} else if r.historyIdx > 0 {
		r.historyIdx--
	}
	r.setBuffer(r.history[r.historyIdx])
}

func (r *repl) historyForward() {
	if r.historyIdx == -1 {
		return
	}
	r.historyIdx++
	if r.historyIdx >= len(r.history) {
		r.historyIdx = -1
		r.setBuffer("")
		return
	}
	r.setBuffer(r.history[r.historyIdx])
}

func (r *repl) setBuffer(s string) {
	r.buffer = []rune(s)
	r.cursor = len(r.buffer)
}

func (r *repl) handleEnter() (bool, error) {
	line := string(r.buffer)
	fmt.Println()

	if r.pending == "" && strings.HasPrefix(strings.TrimSpace(line), ":") {
		stop := r.handleCommand(strings.TrimSpace(line))
		r.buffer = nil
		r.cursor = 0
		if stop {
			return true, nil
		}
		r.redraw()
		return false, nil
	}

	input := r.pending + line
	if strings.TrimSpace(input) == "" {
		r.buffer = nil
		r.cursor = 0
		r.pending = ""
		r.redraw()
		return false, nil
	}

	start := time.Now()
	result, err := r.interp.Eval(r.ctx, input)
	elapsed := time.Since(start)

	if err != nil && isIncompleteInput(err) {
		r.pending = input + "\n"
		r.buffer = nil
		r.cursor = 0
		r.redraw()
		return false, nil
	}

	r.pending = ""
	r.buffer = nil
	r.cursor = 0
	r.historyIdx = -1
	r.history = append(r.history, input)
	appendToHistory(r.historyPath, input)

	if err != nil {
		errorColor.Println(formatError(err).Error())
	} else if result != nil {
		r.printResult(result)
	}
	if r.showTiming {
		typeColor.Printf("%v\n", elapsed)
	}
	r.redraw()
	return false, nil
}

func (r *repl) handleCommand(input string) (stop bool) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ":help", ":h", ":?":
		fmt.Println("Commands:")
		fmt.Println("  :help           Show this help")
		fmt.Println("  :type <expr>    Show the type of an expression")
		fmt.Println("  :expand <code>  Show code with comprehensions expanded")
		fmt.Println("  :env            List defined variables")
		fmt.Println("  :timing         Toggle execution timing")
		fmt.Println("  :clear          Clear the screen")
		fmt.Println("  :quit           Exit the session")

	case ":type", ":t":
		if rest == "" {
			errorColor.Println("usage: :type <expr>")
			return false
		}
		obj, err := r.interp.EvalObject(r.ctx, rest)
		if err != nil {
			errorColor.Println(err.Error())
			return false
		}
		fmt.Println(string(obj.Type()))

	case ":expand", ":x":
		if rest == "" {
			errorColor.Println("usage: :expand <code>")
			return false
		}
		expanded, err := marmoset.ExpandString(r.ctx, rest)
		if err != nil {
			errorColor.Println(err.Error())
			return false
		}
		fmt.Println(expanded)

	case ":env":
		names := r.interp.GlobalNames()
		if len(names) == 0 {
			typeColor.Println("(empty)")
			return false
		}
		for _, name := range names {
			obj, err := r.interp.GetObject(name)
			if err != nil {
				continue
			}
			fmt.Printf("%s %s\n", name, typeColor.Sprintf("(%s)", obj.Type()))
		}

	case ":timing":
		r.showTiming = !r.showTiming
		if r.showTiming {
			fmt.Println("timing on")
		} else {
			fmt.Println("timing off")
		}

	case ":clear", ":cls":
		fmt.Print("\033[2J\033[H")

	case ":exit", ":quit", ":q":
		return true

	default:
		errorColor.Printf("unknown command: %s\n", cmd)
	}
	return false
}

const maxResultLines = 50

func (r *repl) printResult(result any) {
	switch v := result.(type) {
	case int64:
		fmt.Printf("%s %s\n", numberColor.Sprintf("%d", v), typeColor.Sprint("int"))
	case float64:
		fmt.Printf("%s %s\n", numberColor.Sprintf("%g", v), typeColor.Sprint("float"))
	case bool:
		fmt.Printf("%s %s\n", boolColor.Sprintf("%v", v), typeColor.Sprint("bool"))
	case string:
		if len(v) > 500 {
			fmt.Printf("%s %s\n", stringColor.Sprintf("%q", v[:500]),
				typeColor.Sprintf("… +%d chars", len(v)-500))
			return
		}
		fmt.Printf("%s %s\n", stringColor.Sprintf("%q", v), typeColor.Sprint("string"))
	case []any, map[string]any:
		out, err := getOutputJSON(v)
		if err != nil {
			fmt.Printf("%v\n", v)
			return
		}
		fmt.Println(string(out))
	default:
		formatted := fmt.Sprintf("%v", v)
		lines := strings.Split(formatted, "\n")
		if len(lines) > maxResultLines {
			fmt.Println(strings.Join(lines[:maxResultLines], "\n"))
			typeColor.Printf("… +%d lines\n", len(lines)-maxResultLines)
			return
		}
		fmt.Println(formatted)
	}
}

// isIncompleteInput reports whether a parse error means the user should keep
// typing instead of seeing an error, such as an unclosed block or bracket.
// String literal errors never auto-continue since strings cannot span lines.
func isIncompleteInput(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "string literal") || strings.Contains(msg, "escape sequence") {
		return false
	}
	if strings.Contains(msg, "unterminated") {
		return true
	}
	return strings.Contains(msg, "end of file")
}

func loadHistory() ([]string, string) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, ""
	}
	historyPath := filepath.Join(homeDir, ".marmoset_history")
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return nil, historyPath
	}
	lines := strings.Split(string(data), "\n")
	history := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			history = append(history, line)
		}
	}
	return history, historyPath
}

func appendToHistory(path, line string) {
	if path == "" || line == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString(strings.ReplaceAll(line, "\n", " ") + "\n")
}
