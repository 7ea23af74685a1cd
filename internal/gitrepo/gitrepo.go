// Package gitrepo locates the repository root and resolves its remote identity.
package gitrepo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when no enclosing git repository is found.
var ErrNotRepository = errors.New("not inside a git repository")

// FindRoot walks up from start until it finds a directory containing .git.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	for {
		if ResolveGitDir(dir) != "" {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, start)
		}
		dir = parent
	}
}

// ResolveGitDir returns the .git directory of workDir, following "gitdir:"
// files used by worktrees and submodules. It returns "" when there is none.
func ResolveGitDir(workDir string) string {
	gitPath := filepath.Join(workDir, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return gitPath
	}
	if !info.Mode().IsRegular() {
		return ""
	}
	contents, err := os.ReadFile(gitPath)
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(contents))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	gitDir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if gitDir == "" {
		return ""
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(workDir, gitDir)
	}
	return gitDir
}

// RemoteURL returns the origin URL of the repository at root.
// It asks git first and falls back to reading the git config file directly.
func RemoteURL(ctx context.Context, root string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url")
	cmd.Dir = root
	output, err := cmd.Output()
	if err == nil {
		if url := strings.TrimSpace(string(output)); url != "" {
			return url, nil
		}
	}

	if gitDir := ResolveGitDir(root); gitDir != "" {
		if url := ReadGitOrigin(filepath.Join(gitDir, "config")); url != "" {
			return url, nil
		}
	}

	if err != nil {
		return "", fmt.Errorf("failed to get remote origin url: %w", err)
	}
	return "", fmt.Errorf("no remote origin configured in %s", root)
}

// ReadGitOrigin reads the origin URL from a git config file.
func ReadGitOrigin(configPath string) string {
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section != `remote "origin"` {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "url" {
			continue
		}
		return strings.TrimSpace(value)
	}
	return ""
}

// ParseRepository extracts the "org/repo" identifier from a remote URL.
// Both scp-like (git@host:org/repo.git) and URL forms (https://host/org/repo.git)
// are accepted.
func ParseRepository(remote string) (string, error) {
	remote = strings.TrimSpace(remote)

	var path string
	if _, rest, ok := strings.Cut(remote, "://"); ok {
		_, after, found := strings.Cut(rest, "/")
		if !found {
			return "", fmt.Errorf("no repository path in remote %q", remote)
		}
		path = after
	} else if _, after, found := strings.Cut(remote, ":"); found {
		path = after
	} else {
		return "", fmt.Errorf("unrecognized remote %q", remote)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if strings.Count(path, "/") < 1 || strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("no repository path in remote %q", remote)
	}
	return path, nil
}

// Repository resolves the "org/repo" identifier of the repository at root.
func Repository(ctx context.Context, root string) (string, error) {
	remote, err := RemoteURL(ctx, root)
	if err != nil {
		return "", err
	}
	return ParseRepository(remote)
}
