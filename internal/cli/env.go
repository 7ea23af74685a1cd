package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/andywolf/skillcheck/internal/config"
	"github.com/andywolf/skillcheck/internal/console"
)

// runEnv is what every checking command needs.
type runEnv struct {
	root    string
	cfg     *config.Config
	console *console.Console
}

func loadEnv() (*runEnv, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Repository root:", root)
	}

	return &runEnv{
		root:    root,
		cfg:     cfg,
		console: console.New(os.Stdout),
	}, nil
}

// relativeFiles converts command-line paths to root-relative slash paths.
func relativeFiles(root string, args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is outside the repository root %s", arg, root)
		}
		files = append(files, filepath.ToSlash(rel))
	}
	return files, nil
}
