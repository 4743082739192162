/*
File   : mypl/cmd/mypl/main.go

Package main is the entry point for the MyPL toolchain. It provides two
modes of operation:
 1. File Mode: compile and run a MyPL source file given on the command line
 2. REPL Mode (default, no arguments): interactive buffered program runner

Either mode drives the same lexer -> parser -> checker -> codegen -> vm
pipeline; file mode runs it once over a file's contents, REPL mode runs it
once per buffered program entered interactively.
*/
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/akashmaji946/mypl/checker"
	"github.com/akashmaji946/mypl/codegen"
	"github.com/akashmaji946/mypl/parser"
	"github.com/akashmaji946/mypl/repl"
	"github.com/akashmaji946/mypl/vm"
)

// VERSION is the current version of the MyPL toolchain.
var VERSION = "v1.0.0"

// AUTHOR is shown in --version and the REPL banner.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENCE is the software license.
var LICENCE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "MyPL >>> "

// BANNER is the ASCII art logo shown when starting the REPL.
var BANNER = `
  ███╗   ███╗██╗   ██╗██████╗ ██╗
  ████╗ ████║╚██╗ ██╔╝██╔══██╗██║
  ██╔████╔██║ ╚████╔╝ ██████╔╝██║
  ██║╚██╔╝██║  ╚██╔╝  ██╔═══╝ ██║
  ██║ ╚═╝ ██║   ██║   ██║     ███████╗
  ╚═╝     ╚═╝   ╚═╝   ╚═╝     ╚══════╝
`

// LINE separates sections of REPL/CLI output.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// main dispatches on the command line:
//
//	mypl                - start the interactive REPL
//	mypl <file.mypl>    - compile and run a MyPL source file
//	mypl --help | -h    - show usage
//	mypl --version | -v - show version information
func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		if arg == "--help" || arg == "-h" {
			showHelp()
			os.Exit(0)
		}
		if arg == "--version" || arg == "-v" {
			showVersion()
			os.Exit(0)
		}

		runFile(arg)
		return
	}

	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("MyPL - A Statically-Typed Procedural Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  mypl                      Start interactive REPL mode")
	yellowColor.Println("  mypl <path-to-file>       Compile and run a MyPL file (.mypl)")
	yellowColor.Println("  mypl --help               Display this help message")
	yellowColor.Println("  mypl --version            Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL USAGE:")
	yellowColor.Println("  Enter a complete program, then a blank line to compile and run it.")
	yellowColor.Println("  Type '.exit' on its own line to quit.")
}

func showVersion() {
	cyanColor.Println("MyPL - A Statically-Typed Procedural Language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads, compiles and runs a MyPL source file, reporting the
// first error encountered at whichever phase it occurred and exiting
// with status 1 on any failure.
func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] Could not read file '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(source))
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if err := checker.Check(prog); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	frames := codegen.Generate(prog)
	machine := vm.New()
	machine.Load(frames)

	if err := machine.Run(); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
