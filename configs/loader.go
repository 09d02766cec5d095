package configs

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader resolves config paths against an ordered list of CUE sources. Earlier sources take precedence.
// Sources are read and validated once, on first use.
type Loader struct {
	roots func() ([]root, error)
}

type Source struct {
	Name    string
	Content []byte
}

type root struct {
	name  string
	value cue.Value
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return newLoader(schemaSrc, func() ([]Source, error) {
		sources := make([]Source, 0, len(filePaths))
		for _, path := range filePaths {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
			sources = append(sources, Source{Name: path, Content: content})
		}
		return sources, nil
	})
}

func NewSourcesLoader(sources []Source, schemaSrc string) Loader {
	return newLoader(schemaSrc, func() ([]Source, error) {
		return sources, nil
	})
}

func newLoader(schemaSrc string, readSources func() ([]Source, error)) Loader {
	return Loader{
		roots: sync.OnceValues(func() ([]root, error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				// closed, so unknown keys in any source are errors
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("compile schema: %w", err)
				}
			}

			sources, err := readSources()
			if err != nil {
				return nil, err
			}

			roots := make([]root, 0, len(sources))
			for _, source := range sources {
				value := ctx.CompileBytes(source.Content, cue.Filename(source.Name))
				if err := value.Err(); err != nil {
					return nil, fmt.Errorf("compile %s: %w", source.Name, err)
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("validate %s: %w", source.Name, err)
					}
				}
				roots = append(roots, root{name: source.Name, value: value})
			}
			return roots, nil
		}),
	}
}

// Err reports errors reading or validating the sources.
func (l Loader) Err() error {
	_, err := l.roots()
	return err
}

// IterCueValues yields the value at path in each source defining it, in precedence order.
func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.roots()
		if err != nil {
			yield(nil, err)
			return
		}
		cuePath := cue.ParsePath(path)
		for _, r := range roots {
			value := r.value.LookupPath(cuePath)
			if value.Err() != nil || !value.Exists() {
				continue
			}
			if !yield(&value, nil) {
				return
			}
		}
	}
}

// AssignFirst decodes the highest-precedence value at path into target.
func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
