package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	"vendor":     true,
	"docs":       true,
	"tmp":        true,
	".git":       true,
	"deployment": true,
	".vscode":    true,
	".idea":      true,
	"_examples":  true,
	"testdata":   true,
}

// Fails when a package name differs from its folder or a folder name is reused.
func main() {
	problems, err := validate(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking tree: %v\n", err)
		os.Exit(1)
	}

	for _, p := range problems {
		fmt.Println(p)
	}

	if len(problems) > 0 {
		os.Exit(1)
	}

	fmt.Println("No problems found.")
}

func validate(root string) ([]string, error) {
	folders := make(map[string][]string)
	var problems []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}

			if path != root {
				folders[info.Name()] = append(folders[info.Name()], path)
			}
			return nil
		}

		if filepath.Ext(path) != ".go" || strings.HasSuffix(filepath.Base(path), "_test.go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		pkg := extractPackage(string(content))
		if pkg == "main" {
			return nil
		}

		folderName := filepath.Base(filepath.Dir(path))
		if pkg != "" && filepath.Dir(path) != root && pkg != folderName {
			problems = append(problems, fmt.Sprintf("ERROR: package '%s' does not match folder '%s' in: %s", pkg, folderName, path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if paths := folders[name]; len(paths) > 1 {
			problems = append(problems, fmt.Sprintf("ERROR: folder '%s' is duplicated in: %s", name, strings.Join(paths, ", ")))
		}
	}

	return problems, nil
}

func extractPackage(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "package ") {
			return strings.TrimPrefix(line, "package ")
		}
	}
	return ""
}
