package judge

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Language describes how one programming language is compiled and run.
type Language struct {
	ID               string  `toml:"id"`
	FullName         string  `toml:"full_name"`
	CodeFilename     string  `toml:"code_filename"`
	CompileCmd       *string `toml:"compile_cmd"`
	RunCmd           string  `toml:"run_cmd"`
	CompiledFilename *string `toml:"compiled_filename"`
	Enabled          bool    `toml:"enabled"`
}

func (l Language) Compiled() bool {
	return l.CompileCmd != nil
}

//go:embed languages.toml
var defaultLanguagesToml []byte

type languagesFile struct {
	Languages []Language `toml:"languages"`
}

// DefaultLanguages returns the built-in language table.
func DefaultLanguages() ([]Language, error) {
	return parseLanguages(defaultLanguagesToml)
}

// LoadLanguages reads a language table from a TOML file, for overriding
// the built-in one per deployment.
func LoadLanguages(path string) ([]Language, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages file: %w", err)
	}
	return parseLanguages(content)
}

func parseLanguages(content []byte) ([]Language, error) {
	var file languagesFile
	if err := toml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse languages toml: %w", err)
	}
	if len(file.Languages) == 0 {
		return nil, fmt.Errorf("languages toml defines no languages")
	}
	for _, l := range file.Languages {
		if l.ID == "" || l.CodeFilename == "" || l.RunCmd == "" {
			return nil, fmt.Errorf("language %q is missing required fields", l.ID)
		}
	}
	return file.Languages, nil
}

// FindLanguage returns the enabled language with the given id, or nil.
func FindLanguage(langs []Language, id string) *Language {
	for i := range langs {
		if langs[i].ID == id && langs[i].Enabled {
			return &langs[i]
		}
	}
	return nil
}
