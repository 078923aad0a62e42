package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const directive = "//go:generate mockgen "

var skipDirs = map[string]bool{
	"vendor":     true,
	"docs":       true,
	"tmp":        true,
	".git":       true,
	"deployment": true,
	".vscode":    true,
	".idea":      true,
	"_examples":  true,
}

type mockJob struct {
	Dir  string
	Args []string
}

// Regenerates every mock declared with a mockgen go:generate directive.
func main() {
	timeStart := time.Now()

	jobCh := make(chan mockJob, 100)
	var wgWalk sync.WaitGroup
	var wgMock sync.WaitGroup

	const numWorkers = 5

	for i := 0; i < numWorkers; i++ {
		wgMock.Add(1)
		go func() {
			defer wgMock.Done()
			for job := range jobCh {
				args := append([]string{"run", "go.uber.org/mock/mockgen@latest"}, job.Args...)
				cmd := exec.Command("go", args...)
				cmd.Dir = job.Dir
				if out, err := cmd.CombinedOutput(); err != nil {
					fmt.Printf("Error generating mock in %s: %v\n%s", job.Dir, err, out)
				} else {
					fmt.Printf("Mock generated: %s %s\n", job.Dir, strings.Join(job.Args, " "))
				}
			}
		}()
	}

	wgWalk.Add(1)
	go func() {
		defer wgWalk.Done()
		defer close(jobCh)

		err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skipDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
				return nil
			}

			jobs, err := findJobs(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
				return nil
			}

			for _, job := range jobs {
				jobCh <- job
			}

			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error walking tree: %v\n", err)
		}
	}()

	wgWalk.Wait()
	wgMock.Wait()

	fmt.Printf("\nTotal execution time: %s\n", time.Since(timeStart))
}

func findJobs(path string) ([]mockJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var jobs []mockJob
	s := bufio.NewScanner(f)
	for s.Scan() {
		if args, ok := parseDirective(s.Text()); ok {
			jobs = append(jobs, mockJob{Dir: filepath.Dir(path), Args: args})
		}
	}

	return jobs, s.Err()
}

func parseDirective(line string) ([]string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, directive) {
		return nil, false
	}

	args := strings.Fields(strings.TrimPrefix(line, directive))
	if len(args) == 0 {
		return nil, false
	}

	return args, true
}
