package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"transform-include/internal/config"
	"transform-include/internal/diff"
	"transform-include/internal/logging"
	"transform-include/internal/model"
	"transform-include/internal/rewrite"
	"transform-include/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func releaseTag() *latest.GithubTag {
	return &latest.GithubTag{
		Owner:      model.ReleaseOwner,
		Repository: model.ReleaseRepository,
	}
}

func checkUpdate(currentVer string) {
	res, err := latest.Check(releaseTag(), currentVer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check %s/%s for updates: %v\n", model.ReleaseOwner, model.ReleaseRepository, err)
		return
	}

	if res.Outdated {
		fmt.Printf("A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Printf("You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: transform-include [options] --map <src>:<dst> file...\n\n")
		fmt.Fprintf(os.Stderr, "transform-include rewrites quoted #include directives. Each path is resolved\n")
		fmt.Fprintf(os.Stderr, "against the include directories, then the resolved path is remapped with the\n")
		fmt.Fprintf(os.Stderr, "first matching --map rule. Files are rewritten in place.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  transform-include -I /src/a -m /src/a:lib/a main.c     # rewrite main.c\n")
		fmt.Fprintf(os.Stderr, "  transform-include -n -I /src/a -m /src/a:lib/a *.c      # preview the diffs\n")
		fmt.Fprintf(os.Stderr, "  transform-include -i -c transform-include.yaml src/*.c  # review, then write\n")
	}

	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Don't write to disk, just print the diffs that would happen")
	includeFlag := pflag.StringArrayP("include", "I", nil, "Include path used when compiling. Can be specified multiple times")
	mapFlag := pflag.StringArrayP("map", "m", nil, "Paths to map to other paths. Format: \"/path/to/old:/path/to/new\"")
	keepGoingFlag := pflag.BoolP("keep-going", "k", false, "Ignore unresolved include paths instead of exiting")
	configFlag := pflag.StringP("config", "c", "", "YAML file with include, map and keep_going entries")
	interactiveFlag := pflag.BoolP("interactive", "i", false, "Review the rewrites in a terminal UI before writing")
	colorFlag := pflag.String("color", "auto", "Colour the dry-run diff (auto, always, never)")
	verbosityFlag := pflag.String("verbosity", "Info", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("transform-include version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	verbosity, err := logging.ParseVerbosity(*verbosityFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logging.Setup(os.Stderr, verbosity)

	renderer, err := diffRenderer(os.Stdout, *colorFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var cfgFile *config.File
	if *configFlag != "" {
		cfgFile, err = config.LoadFile(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Build(cfgFile, config.Flags{
		Include:   *includeFlag,
		Map:       *mapFlag,
		KeepGoing: *keepGoingFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files := pflag.Args()
	if len(cfg.MappingRules) == 0 || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one --map rule and one file are required\n\n")
		pflag.Usage()
		os.Exit(2)
	}

	engine := rewrite.NewEngine(cfg, rewrite.OSProber{})

	if *interactiveFlag {
		err = runInteractive(engine, files, *dryRunFlag)
	} else {
		err = runBatch(engine, files, *dryRunFlag, renderer)
	}
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// runBatch processes files one at a time. Files written before a failure
// stay written; later files are not touched.
func runBatch(engine *rewrite.Engine, files []string, dryRun bool, renderer *lipgloss.Renderer) error {
	for _, path := range files {
		res, err := engine.RewriteFile(path)
		if err != nil {
			return err
		}

		if dryRun {
			if err := printDiff(os.Stdout, res, renderer); err != nil {
				return err
			}
			continue
		}

		if err := rewrite.WriteResult(res); err != nil {
			return err
		}
	}
	return nil
}

func runInteractive(engine *rewrite.Engine, files []string, dryRun bool) error {
	items := make([]tui.FileItem, 0, len(files))
	for _, path := range files {
		res, err := engine.RewriteFile(path)
		if err != nil {
			return err
		}
		items = append(items, tui.NewFileItem(res))
	}

	accepted, err := tui.Run(items, dryRun)
	if err != nil {
		return fmt.Errorf("review UI failed: %w", err)
	}

	for _, res := range accepted {
		if err := rewrite.WriteResult(res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", res.Path)
	}
	return nil
}

func printDiff(w io.Writer, res rewrite.FileResult, renderer *lipgloss.Renderer) error {
	header := "--- " + res.Path
	if renderer != nil {
		header = renderer.NewStyle().Bold(true).Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	return diff.Render(w, diff.Lines(res.Original, res.Rewritten), renderer)
}

// diffRenderer returns nil when the diff must be printed without colour.
func diffRenderer(w io.Writer, mode string) (*lipgloss.Renderer, error) {
	switch mode {
	case "never":
		return nil, nil
	case "always":
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
		return r, nil
	case "auto":
		r := lipgloss.NewRenderer(w)
		if r.ColorProfile() == termenv.Ascii {
			return nil, nil
		}
		return r, nil
	}
	return nil, fmt.Errorf("invalid color mode '%s'. Valid modes are auto, always, never", mode)
}

// reportError prints err, with an excerpt of the offending line when an
// include could not be resolved.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var rerr *rewrite.ResolutionError
	if !errors.As(err, &rerr) || rerr.File == "" || rerr.Line == 0 {
		return
	}

	content, readErr := os.ReadFile(rerr.File)
	if readErr != nil {
		return
	}
	ctx := model.LineContextOf(string(content), rerr.Line)
	if ctx.ErrorMsg != "" {
		return
	}

	r := lipgloss.NewRenderer(w)
	excerptTitleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	excerptDimStyle := r.NewStyle().Foreground(lipgloss.Color("240"))
	excerptLineStyle := r.NewStyle().Foreground(lipgloss.Color("208")) // Orange

	fmt.Fprintln(w, excerptTitleStyle.Render(fmt.Sprintf("\n%s:%d", rerr.File, rerr.Line)))
	if ctx.HasBefore1 {
		fmt.Fprintln(w, excerptDimStyle.Render(fmt.Sprintf("%5d | %s", ctx.LineNumber-1, ctx.Before1)))
	}
	fmt.Fprintln(w, excerptLineStyle.Render(fmt.Sprintf("%5d | %s", ctx.LineNumber, ctx.Target)))
	if ctx.HasAfter1 {
		fmt.Fprintln(w, excerptDimStyle.Render(fmt.Sprintf("%5d | %s", ctx.LineNumber+1, ctx.After1)))
	}
	fmt.Fprintln(w, "\nUse --keep-going to leave unresolved includes unchanged.")
}
