// Package cmd implements the clockface CLI commands.
//
// A root command dispatches to subcommands (serve, render, watch).
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
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
	Name:  "clockface",
	Short: "clockface - an analog clock with a quartz tick",
	Long: `clockface draws an analog clock face with a smooth sweep or a quartz
step second hand and an optional mechanical tick sound.

Use "clockface <command> --help" for more information about a command.`,
	Usage: "clockface <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// configDir is where clockface.yaml is looked up.
var configDir = "."

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --config-dir
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("clockface version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config-dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--config-dir requires a directory path")
			}
			configDir = args[i+1]
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--config-dir="); ok {
				configDir = v
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

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
	fmt.Println("  --config-dir DIR     Directory holding clockface.yaml (default: .)")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Printf("  %-20s Listen address for serve\n", config.EnvAddr)
	fmt.Printf("  %-20s Face theme, dark or light\n", config.EnvTheme)
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  clockface serve --addr :8080        Serve the live face")
	fmt.Println("  clockface render -o face.png        Render the current time")
	fmt.Println("  clockface watch --sound             Tick along in the terminal")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

// faceOptions are the face flags shared by every command. Flags override
// clockface.yaml and the environment.
type faceOptions struct {
	theme  string
	smooth *bool
	sound  *bool
	size   int
}

// parseFaceArg consumes one shared face flag at args[i] and returns how many
// arguments it used, or zero when args[i] is not a face flag.
func parseFaceArg(args []string, i int, opts *faceOptions) (int, error) {
	value := func() (string, error) {
		if i+1 >= len(args) {
			return "", errMissingValue(args[i])
		}
		return args[i+1], nil
	}
	on, off := true, false
	switch args[i] {
	case "--theme":
		v, err := value()
		if err != nil {
			return 0, err
		}
		opts.theme = v
		return 2, nil
	case "--size":
		v, err := value()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("--size: %w", err)
		}
		opts.size = n
		return 2, nil
	case "--smooth":
		opts.smooth = &on
		return 1, nil
	case "--step":
		opts.smooth = &off
		return 1, nil
	case "--sound":
		opts.sound = &on
		return 1, nil
	case "--mute":
		opts.sound = &off
		return 1, nil
	}
	return 0, nil
}

// resolveConfig loads clockface.yaml from the config directory and applies
// flag overrides.
func resolveConfig(opts faceOptions) (*config.Resolved, error) {
	cfg, err := config.LoadOptional(configDir)
	if err != nil {
		return nil, err
	}
	if opts.theme != "" {
		cfg.Clock.Theme = opts.theme
	}
	if opts.size != 0 {
		cfg.Clock.Size = opts.size
	}
	if opts.smooth != nil {
		cfg.Clock.Smooth = *opts.smooth
	}
	if opts.sound != nil {
		cfg.Clock.Sound = *opts.sound
	}
	getenv := os.Getenv
	if opts.theme != "" {
		getenv = func(k string) string {
			if k == config.EnvTheme {
				return ""
			}
			return os.Getenv(k)
		}
	}
	return cfg.Resolve(getenv)
}

func errMissingValue(flag string) error {
	return fmt.Errorf("%s requires a value", flag)
}

func errUnknownFlag(cmd, flag string) error {
	return fmt.Errorf("unknown flag %q for %s (see clockface %s --help)", flag, cmd, cmd)
}
