package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/koskimas/idlc/internal/config"
	"github.com/koskimas/idlc/internal/gen"
	"github.com/koskimas/idlc/internal/lexer"
	"github.com/koskimas/idlc/internal/model"
	"github.com/koskimas/idlc/internal/parse"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	WorkingDir string
	// ConfigPath overrides the config file lookup in WorkingDir.
	ConfigPath string
}

// Run compiles every schema matched by the config and writes the artifacts.
// Nothing is written unless all schemas compile. It returns the written
// file paths.
func Run(s Settings) ([]string, error) {
	configPath := s.ConfigPath

	if configPath == "" {
		var err error
		if configPath, err = config.Find(s.WorkingDir); err != nil {
			return nil, err
		}
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(s.WorkingDir, configPath)
	}

	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)

	files, err := getSchemaFiles(root, *cfg)
	if err != nil {
		return nil, err
	}

	artifacts := make([]gen.Artifact, 0, len(files)*3)
	for _, f := range files {
		a, err := compileFile(f, cfg.Writer.Package)
		if err != nil {
			return nil, err
		}

		artifacts = append(artifacts, a...)
	}

	return writeArtifacts(filepath.Join(root, cfg.Output.Dir), artifacts)
}

// Compile compiles a single schema file into outDir without a config.
func Compile(schemaPath, outDir, writerPackage string) ([]string, error) {
	artifacts, err := compileFile(schemaPath, writerPackage)
	if err != nil {
		return nil, err
	}

	return writeArtifacts(outDir, artifacts)
}

// getSchemaFiles resolves the schema globs of the config. Every file is
// returned once, in sorted order.
func getSchemaFiles(root string, cfg config.Config) ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0)

	for _, sc := range cfg.Schemas {
		matches, err := filepath.Glob(filepath.Join(root, sc.Path))
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve schema files using glob "%s": %w`, sc.Path, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf(`no schema files match "%s"`, sc.Path)
		}

		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func compileFile(schemaPath, writerPackage string) ([]gen.Artifact, error) {
	s, err := parse.ParseFile(schemaPath)
	if err != nil {
		return nil, err
	}

	artifacts, err := gen.Generate(s, gen.Options{
		SourceName:    schemaPath,
		WriterPackage: writerPackage,
	})
	if err != nil {
		return nil, fmt.Errorf(`failed to generate code for "%s": %w`, schemaPath, err)
	}

	return artifacts, nil
}

func writeArtifacts(outDir string, artifacts []gen.Artifact) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	seen := make(map[string]bool)

	for _, a := range artifacts {
		filePath := filepath.Join(outDir, a.Path())

		if seen[filePath] {
			return nil, fmt.Errorf(`more than one schema generates "%s"`, filePath)
		}

		seen[filePath] = true
		paths = append(paths, filePath)
	}

	for i, a := range artifacts {
		if err := os.MkdirAll(filepath.Dir(paths[i]), 0o755); err != nil {
			return nil, err
		}

		if err := os.WriteFile(paths[i], a.Source, 0o644); err != nil {
			return nil, fmt.Errorf(`failed to write "%s": %w`, paths[i], err)
		}
	}

	return paths, nil
}

type Format string

const (
	FormatText    Format = "text"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Inspect parses a schema and dumps the resolved model to w.
func Inspect(w io.Writer, schemaPath string, format Format) error {
	s, err := parse.ParseFile(schemaPath)
	if err != nil {
		return err
	}

	return writeSchema(w, s, format)
}

func writeSchema(w io.Writer, s *model.Schema, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, s.String())
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(s.Export()); err != nil {
			return fmt.Errorf("failed to encode schema as yaml: %w", err)
		}

		return enc.Close()
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(s.Export()); err != nil {
			return fmt.Errorf("failed to encode schema as msgpack: %w", err)
		}

		return nil
	}

	return fmt.Errorf(`unknown format "%s"`, format)
}

// Tokenize writes the tokens of a schema file one per line.
func Tokenize(w io.Writer, schemaPath string) error {
	src, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf(`failed to read schema file "%s": %w`, schemaPath, err)
	}

	tokens, err := lexer.Lex(string(src))
	if err != nil {
		return fmt.Errorf(`failed to tokenize schema file "%s": %w`, schemaPath, err)
	}

	for _, t := range tokens {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}

	return nil
}
