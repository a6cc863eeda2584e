package main

import (
	"os"
	"strings"

	"todo-cli/internal/cli"
)

func isQuickAdd(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "+") && len(s) > 1
}

func rewriteQuickAddArgs(argv []string) []string {
	// Convenience: `todo +Buy milk` works like `todo add Buy milk`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `todo --dir ... +Buy milk`), so find the first
	// positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--config": true,
		"--format": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "add", strings.TrimPrefix(strings.TrimSpace(argv[i]), "+"))
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isQuickAdd(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}
		if isQuickAdd(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	argv := rewriteQuickAddArgs(os.Args)
	if err := cli.Execute(argv[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
