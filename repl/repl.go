/*
File   : mypl/repl/repl.go

Package repl implements an interactive Read-Eval-Print Loop for MyPL.
Unlike an expression-oriented language, every MyPL statement must live
inside a function declaration, so there is no meaningful "evaluate one
line" REPL; instead the loop buffers lines until the user enters a blank
line, then runs the whole buffer through lex -> parse -> check -> codegen
-> run and reports whatever it produced.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/mypl/checker"
	"github.com/akashmaji946/mypl/codegen"
	"github.com/akashmaji946/mypl/parser"
	"github.com/akashmaji946/mypl/vm"
)

// Color definitions for REPL output.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one Read-Eval-Print Loop session's configuration.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a new Repl instance with the given display strings.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage instructions to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to MyPL!")
	cyanColor.Fprintf(writer, "%s\n", "Enter a complete program (struct/function declarations, a void main()),")
	cyanColor.Fprintf(writer, "%s\n", "then an empty line to compile and run it.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' on its own line to quit.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop. Lines are read via readline, which reads
// standard input (reader is not passed to it), and buffered into a
// program; an empty line triggers a full lex -> parse -> check -> codegen
// -> run pass over the buffer. Program output goes to writer and any
// `input()` reads come from reader.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		if strings.TrimSpace(trimmed) == "" {
			if buf.Len() > 0 {
				rl.SaveHistory(buf.String())
				r.runProgram(writer, reader, buf.String())
				buf.Reset()
			}
			continue
		}

		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}
}

// runProgram compiles and runs one buffered MyPL program, reporting the
// first error encountered at whichever phase it occurred. A panic escaping
// the VM (which should not happen for a type-checked program, but guards
// against a bug in the checker or VM itself) is caught so the REPL survives.
func (r *Repl) runProgram(writer io.Writer, reader io.Reader, source string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	prog, err := parser.Parse(source)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	if err := checker.Check(prog); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	frames := codegen.Generate(prog)
	machine := vm.New()
	machine.Load(frames)
	machine.SetWriter(writer)
	machine.SetReader(reader)

	if err := machine.Run(); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
	}
}
