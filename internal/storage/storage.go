// Package storage owns the on-disk layout for fetched puzzle assets:
//
//	<base>/<year>/descriptions/<day>.html
//	<base>/<year>/inputs/<day>-<part>.txt
//	<base>/<year>/samples/<day>-<part>.txt
//	<base>/<year>/samples/<day>-<part>-answer.txt
//
// Individual paths can be overridden per asset kind, which the fetch
// command exposes as flags for solver tooling with its own layout.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const defaultBaseDir = "data"

// Store reads and writes puzzle assets under a base directory.
type Store struct {
	baseDir         string
	descriptionPath string
	inputPath       string
	samplePath      string
	answerPath      string
}

// New creates a store rooted at baseDir; an empty baseDir means "data"
// relative to the working directory.
func New(baseDir string) *Store {
	if baseDir == "" {
		baseDir = defaultBaseDir
	}
	return &Store{baseDir: baseDir}
}

// WithDescriptionPath overrides the description target path.
func (s *Store) WithDescriptionPath(path string) *Store {
	s.descriptionPath = path
	return s
}

// WithInputPath overrides the input target path.
func (s *Store) WithInputPath(path string) *Store {
	s.inputPath = path
	return s
}

// WithSamplePath overrides the sample target path.
func (s *Store) WithSamplePath(path string) *Store {
	s.samplePath = path
	return s
}

// WithAnswerPath overrides the expected-answer target path.
func (s *Store) WithAnswerPath(path string) *Store {
	s.answerPath = path
	return s
}

func (s *Store) descriptionsDir(year int) string {
	return filepath.Join(s.baseDir, fmt.Sprint(year), "descriptions")
}

func (s *Store) inputsDir(year int) string {
	return filepath.Join(s.baseDir, fmt.Sprint(year), "inputs")
}

func (s *Store) samplesDir(year int) string {
	return filepath.Join(s.baseDir, fmt.Sprint(year), "samples")
}

func (s *Store) descriptionFile(year, day int) string {
	if s.descriptionPath != "" {
		return s.descriptionPath
	}
	return filepath.Join(s.descriptionsDir(year), fmt.Sprintf("%d.html", day))
}

func (s *Store) inputFile(year, day, part int) string {
	if s.inputPath != "" {
		return s.inputPath
	}
	return filepath.Join(s.inputsDir(year), fmt.Sprintf("%d-%d.txt", day, part))
}

func (s *Store) sampleFile(year, day, part int) string {
	if s.samplePath != "" {
		return s.samplePath
	}
	return filepath.Join(s.samplesDir(year), fmt.Sprintf("%d-%d.txt", day, part))
}

func (s *Store) answerFile(year, day, part int) string {
	if s.answerPath != "" {
		return s.answerPath
	}
	return filepath.Join(s.samplesDir(year), fmt.Sprintf("%d-%d-answer.txt", day, part))
}

func write(path, content string) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// SaveDescription writes the assembled description document and
// returns the path it was written to.
func (s *Store) SaveDescription(year, day int, content string) (string, error) {
	return write(s.descriptionFile(year, day), content)
}

// SaveInput writes a decrypted puzzle input.
func (s *Store) SaveInput(year, day, part int, content string) (string, error) {
	return write(s.inputFile(year, day, part), content)
}

// SaveSample writes a part's worked example.
func (s *Store) SaveSample(year, day, part int, content string) (string, error) {
	return write(s.sampleFile(year, day, part), content)
}

// SaveExpectedAnswer writes a part's expected sample answer.
func (s *Store) SaveExpectedAnswer(year, day, part int, content string) (string, error) {
	return write(s.answerFile(year, day, part), content)
}

// LoadDescription reads a previously saved description document.
func (s *Store) LoadDescription(year, day int) (string, error) {
	data, err := os.ReadFile(s.descriptionFile(year, day))
	if err != nil {
		return "", errors.Wrap(err, "load description")
	}
	return string(data), nil
}

// LoadInput reads a previously saved input.
func (s *Store) LoadInput(year, day, part int) (string, error) {
	data, err := os.ReadFile(s.inputFile(year, day, part))
	if err != nil {
		return "", errors.Wrap(err, "load input")
	}
	return string(data), nil
}

// HasDescription reports whether a description is cached locally.
func (s *Store) HasDescription(year, day int) bool {
	_, err := os.Stat(s.descriptionFile(year, day))
	return err == nil
}

// HasInput reports whether an input is cached locally.
func (s *Store) HasInput(year, day, part int) bool {
	_, err := os.Stat(s.inputFile(year, day, part))
	return err == nil
}
