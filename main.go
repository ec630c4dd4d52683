package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"pathbatch/internal/analyze"
	"pathbatch/internal/model"
	"pathbatch/internal/report"
	"pathbatch/internal/textenc"
	"pathbatch/internal/tui"
	"pathbatch/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "pathbatch",
		Repository: "pathbatch",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/pathbatch/pathbatch/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pathbatch -f <listing> [options]\n\n")
		fmt.Fprintf(os.Stderr, "pathbatch analyzes a forensic directory listing, flags paths and\n")
		fmt.Fprintf(os.Stderr, "filenames the extraction tool cannot handle, and plans extraction\n")
		fmt.Fprintf(os.Stderr, "batches that fit its per-batch file limit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pathbatch -f listing.tsv             # Write CSV reports next to the listing\n")
		fmt.Fprintf(os.Stderr, "  pathbatch -f listing.tsv --tui       # Browse results interactively\n")
		fmt.Fprintf(os.Stderr, "  pathbatch -f listing.tsv --json      # Dump results as JSON\n")
		fmt.Fprintf(os.Stderr, "  pathbatch -f listing.tsv -l 5000     # Override the per-batch file limit\n")
	}

	fileFlag := pflag.StringP("file", "f", "", "Input directory listing to analyze (required)")
	encodingFlag := pflag.StringP("encoding", "e", "", "Input encoding (default: auto-detect)")
	delimiterFlag := pflag.StringP("delimiter", "d", "", "Field delimiter in the listing (default: tab)")
	pathSepFlag := pflag.StringP("path-separator", "s", "", `Path separator in Item_Path values (default: \)`)
	fileLimitFlag := pflag.StringP("file-limit", "l", "", "Per-batch file count limit (default: 30000)")
	maxPathFlag := pflag.StringP("max-path-length", "m", "", "Longest addressable full path (default: 250)")
	maxFileFlag := pflag.StringP("max-file-length", "n", "", "Longest addressable filename (default: 190)")
	maxPfFlag := pflag.StringP("max-pf-length", "p", "", "Longest parent folder + filename (default: 250)")
	searchLocalFlag := pflag.Bool("search-local", false, "Evaluate the file limit against local-only counts")
	configFlag := pflag.String("config", "", "YAML settings file (flags override it)")
	outputFlag := pflag.StringP("output-dir", "o", "", "Report output directory (default: unix-time dir next to the listing)")
	jsonFlag := pflag.BoolP("json", "j", false, "Output analysis results as JSON instead of CSV reports")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse results in an interactive terminal UI")
	webFlag := pflag.BoolP("web", "w", false, "Serve results as JSON on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("pathbatch version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: an input listing is required (-f)")
		pflag.Usage()
		os.Exit(2)
	}

	cfg := model.DefaultConfig()
	if *configFlag != "" {
		var err error
		cfg, err = model.LoadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags win over the config file. The numeric ones arrive as strings
	// and degrade to the current value when malformed.
	if *encodingFlag != "" {
		cfg.Encoding = *encodingFlag
	}
	if *delimiterFlag != "" {
		cfg.Delimiter = *delimiterFlag
	}
	if *pathSepFlag != "" {
		cfg.PathSep = *pathSepFlag
	}
	if *fileLimitFlag != "" {
		cfg.FileLimit = model.IntOr(*fileLimitFlag, cfg.FileLimit)
	}
	if *maxPathFlag != "" {
		cfg.MaxPathLength = model.IntOr(*maxPathFlag, cfg.MaxPathLength)
	}
	if *maxFileFlag != "" {
		cfg.MaxFileLength = model.IntOr(*maxFileFlag, cfg.MaxFileLength)
	}
	if *maxPfFlag != "" {
		cfg.MaxParentFileLength = model.IntOr(*maxPfFlag, cfg.MaxParentFileLength)
	}
	if *searchLocalFlag {
		cfg.SearchLocal = true
	}

	started := time.Now()
	outDir := *outputFlag
	if outDir == "" {
		outDir = report.RunDir(*fileFlag, started)
	}

	log, logFile := newRunLogger(outDir, started, *jsonFlag || *tuiFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	res, err := runAnalysis(cfg, *fileFlag, log)
	if err != nil {
		log.WithError(err).Error("analysis failed")
		os.Exit(1)
	}

	switch {
	case *jsonFlag:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding results: %v\n", err)
			os.Exit(1)
		}
	case *tuiFlag:
		m := tui.InitialModel(res)
		p := tea.NewProgram(&m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v", err)
			os.Exit(1)
		}
	case *webFlag:
		paths, err := report.WriteAll(res, outDir, report.Timestamp(started))
		if err != nil {
			log.WithError(err).Error("writing reports failed")
			os.Exit(1)
		}
		logSummary(log, res, paths, started)
		srv := web.NewServer(res, log)
		if err := srv.Start("8080"); err != nil {
			log.WithError(err).Error("web server failed")
			os.Exit(1)
		}
	default:
		paths, err := report.WriteAll(res, outDir, report.Timestamp(started))
		if err != nil {
			log.WithError(err).Error("writing reports failed")
			os.Exit(1)
		}
		logSummary(log, res, paths, started)
	}
}

// newRunLogger builds the run logger: stdout plus a log file in the run
// output directory. quiet routes console output to stderr so --json stdout
// stays machine-readable.
func newRunLogger(outDir string, started time.Time, quiet bool) (*logrus.Logger, *os.File) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	console := os.Stdout
	if quiet {
		console = os.Stderr
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.SetOutput(console)
		log.WithError(err).Warn("could not create run directory, logging to console only")
		return log, nil
	}
	name := filepath.Join(outDir, fmt.Sprintf("log_%s.txt", report.Timestamp(started)))
	f, err := os.Create(name)
	if err != nil {
		log.SetOutput(console)
		log.WithError(err).Warn("could not create run log file, logging to console only")
		return log, nil
	}
	log.SetOutput(io.MultiWriter(console, f))
	return log, f
}

func runAnalysis(cfg model.Config, inputFile string, log *logrus.Logger) (*analyze.Results, error) {
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("opening listing: %w", err)
	}
	defer f.Close()

	r, encName, err := textenc.NewReader(f, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": inputFile, "encoding": encName}).Info("analyzing listing")

	a := analyze.New(cfg, log)
	if err := a.Process(r); err != nil {
		return nil, err
	}
	return a.BuildResults(), nil
}

func logSummary(log *logrus.Logger, res *analyze.Results, paths report.Paths, started time.Time) {
	s := res.Summary
	log.Infof("lines processed:        %d", s.LinesProcessed)
	log.Infof("directories tracked:    %d", s.NumNodes)
	log.Infof("batches:                %d", s.NumBatches)
	log.Infof("filename outliers:      %d", s.NumOutliers1)
	log.Infof("parent+file outliers:   %d", s.NumOutliers2)
	log.Infof("directories to trim:    %d", s.NumTrimmed)
	log.Infof("dirs over file limit:   %d", s.NumDirsOverLimit)
	log.Infof("paths unable to shorten: %d", s.NumUnableToShorten)
	log.Infof("reports written to %s", paths.Dir)
	log.Infof("done in %s", time.Since(started).Round(time.Millisecond))
}
