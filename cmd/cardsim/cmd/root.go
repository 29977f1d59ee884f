// Package cmd implements the cardsim CLI commands.
//
// The root command dispatches to subcommands (run, friction, frame) that
// drive a card presentation against an in-memory host.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "cardsim",
	Short: "cardsim - simulate card modal presentations",
	Long: `cardsim plays card presentations headlessly: the entrance animation,
interactive drag-to-dismiss with friction, nested scroll hand-off, and
height changes, all on a simulated clock.

Use "cardsim <command> --help" for more information about a command.`,
	Usage: "cardsim <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("cardsim version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cardsim run drag.yaml --png out.png   Play a scenario and render the background")
	fmt.Println("  cardsim friction 50 120 300           Show the card offset for raw drags")
	fmt.Println("  cardsim frame --custom-height 400     Show the presented frame")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

// floatFlag reads the value following args[i] for flag name, accepting the
// --name=value form too. It returns the value and the index of the last
// argument consumed.
func floatFlag(args []string, i int, name string) (float64, int, error) {
	raw, next := "", i
	if v, ok := strings.CutPrefix(args[i], name+"="); ok {
		raw = v
	} else {
		if i+1 >= len(args) {
			return 0, i, fmt.Errorf("%s requires a value", name)
		}
		raw, next = args[i+1], i+1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, i, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, next, nil
}
