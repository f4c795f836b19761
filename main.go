package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string

	// Output
	outputFile    string
	printToStdout bool
	pdfOutputFile string
	showTree      bool

	// Token counting
	countTokens    bool
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	interactiveMode bool
	debug           bool
)

// version is the application version, set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "clipsource [PATH]",
	Short: "clipsource copies a source tree to the clipboard as markdown.",
	Long: `clipsource walks a directory (or a Git repository URL), keeps the files whose
extension maps to a known language, and joins them into one markdown document with
each file in a fenced code block. Collection stops once the file or line cap is hit.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	v := viper.GetViper()

	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/clipsource/config.toml)")

	// Filtering
	flags.StringSlice("ignore-dir", defaultIgnoreDirs, "Directory names to skip at any depth")
	v.BindPFlag("ignore_dirs", flags.Lookup("ignore-dir"))
	flags.StringSliceP("ignore", "e", nil, "Glob patterns to skip, matched against the full path (e.g. **/*_test.py)")
	v.BindPFlag("ignore_patterns", flags.Lookup("ignore"))
	flags.Int("max-files", defaultMaxFiles, "Maximum number of files to include")
	v.BindPFlag("max_files", flags.Lookup("max-files"))
	flags.Int("max-lines", defaultMaxTotalLines, "Maximum number of lines to include")
	v.BindPFlag("max_total_lines", flags.Lookup("max-lines"))
	flags.Bool("gitignore", false, "Also skip paths matched by the root .gitignore")
	v.BindPFlag("gitignore", flags.Lookup("gitignore"))
	flags.StringSliceP("language", "l", nil, "Only include these languages (e.g. python)")
	v.BindPFlag("language", flags.Lookup("language"))
	flags.String("languages-file", "", "YAML file replacing the built-in language table")
	v.BindPFlag("languages_file", flags.Lookup("languages-file"))

	// Output
	flags.StringVarP(&outputFile, "file", "f", "", "Save output to specified file instead of the clipboard")
	flags.BoolVarP(&printToStdout, "print", "p", false, "Print output to stdout instead of the clipboard")
	flags.StringVar(&pdfOutputFile, "pdf", "", "Save output as PDF")
	flags.BoolVar(&showTree, "tree", false, "Prepend a tree of the included files")

	// Token counting
	flags.BoolVar(&countTokens, "tokens", false, "Report an estimated token count")
	flags.StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	flags.StringVar(&tokenizerModel, "model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.StringVar(&tokenizerFile, "tokenizer-file", "", "Path to local tokenizer file")

	flags.BoolVar(&interactiveMode, "interactive", false, "Pick the directory with a fuzzy finder")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	setConfigDefaults(v)
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}
	defer logger.Sync()

	v := viper.GetViper()
	used, err := readConfigFile(v, cfgFile)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("Using config file", zap.String("path", used))
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	langs, err := loadLanguages(v)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if interactiveMode {
		picked, err := pickRoot(root, cfg.IgnoreDirs)
		if err != nil {
			return fmt.Errorf("interactive mode error: %w", err)
		}
		if picked == "" {
			fmt.Fprintln(os.Stderr, "Interactive selection aborted.")
			return nil
		}
		root = picked
	}

	displayName := filepath.Base(absOrSelf(root))
	if isGitURL(root) {
		fmt.Fprintf(os.Stderr, "Cloning Git repository '%s'...\n", root)
		tempDir, err := cloneGitRepo(root, os.Stderr)
		if err != nil {
			return err
		}
		defer os.RemoveAll(tempDir)
		displayName = strings.TrimSuffix(filepath.Base(root), ".git")
		root = tempDir
	}

	fsys := NewFileSystem(nil)
	collector, err := NewCollector(cfg, fsys, langs, logger)
	if err != nil {
		return err
	}
	result, err := collector.Collect(root)
	if err != nil {
		return fmt.Errorf("failed to copy codebase: %w", err)
	}

	for _, w := range capWarnings(result) {
		fmt.Fprintln(os.Stderr, "Warning:", w)
	}
	if strings.TrimSpace(result.Output) == "" {
		fmt.Fprintf(os.Stderr, "No matching files found in %s\n", displayName)
		return nil
	}

	text := composeOutput(result, displayName, showTree)

	tokens := 0
	if countTokens {
		tk, err := newTokenizer(tokenizerOptions{Kind: tokenizerType, Model: tokenizerModel, File: tokenizerFile}, logger)
		if err != nil {
			logger.Warn("Token counting disabled", zap.Error(err))
		} else {
			tokens = tk.CountTokens(text)
		}
	}
	summary := summaryLine(result, tokens)

	if pdfOutputFile != "" {
		if err := generatePDF(result, root, fsys, langs, summary, pdfOutputFile, logger); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s to %s\n", summary, pdfOutputFile)
		return nil
	}

	return deliver(text, summary, destination{file: outputFile, print: printToStdout}, os.Stdout, os.Stderr)
}

// loadLanguages builds the language table from the languages file, if any,
// and narrows it to the selected languages.
func loadLanguages(v *viper.Viper) (*LanguageTable, error) {
	langs := DefaultLanguages()
	if path := v.GetString("languages_file"); path != "" {
		var err error
		if langs, err = LoadLanguageTable(path); err != nil {
			return nil, err
		}
	}
	return langs.Only(nonEmpty(v.GetStringSlice("language"))...)
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
