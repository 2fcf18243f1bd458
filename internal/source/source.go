// Package source retrieves question documents by name.
package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"

	"github.com/kwkoo/quizrunner/internal/common"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ErrNotFound is returned by a source that does not hold the requested set.
var ErrNotFound = errors.New("question set not found")

type Source interface {
	// Used in log messages.
	Kind() string
	Load(ctx context.Context, name string) (common.QuestionSet, error)
}

// Lister is implemented by sources that can enumerate their sets.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%q is not a valid question set name", name)
	}
	return nil
}

// Fallback tries each source once, in order. A malformed document stops the
// search since another source is not expected to fix it.
type Fallback struct {
	sources []Source
}

func NewFallback(sources ...Source) *Fallback {
	return &Fallback{sources: sources}
}

func (f *Fallback) Kind() string {
	return "fallback"
}

func (f *Fallback) Load(ctx context.Context, name string) (common.QuestionSet, error) {
	if err := ValidateName(name); err != nil {
		return common.QuestionSet{}, common.NewSourceUnavailableError(name, err)
	}

	var errs []error
	for _, s := range f.sources {
		set, err := s.Load(ctx, name)
		if err == nil {
			log.Printf("loaded question set %s with %d questions from %s source", name, set.NumQuestions(), s.Kind())
			return set, nil
		}

		var formatErr *common.SourceFormatError
		if errors.As(err, &formatErr) {
			return common.QuestionSet{}, err
		}
		if !errors.Is(err, ErrNotFound) {
			log.Printf("error loading question set %s from %s source: %v", name, s.Kind(), err)
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Kind(), err))

		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("no sources configured"))
	}
	return common.QuestionSet{}, common.NewSourceUnavailableError(name, errors.Join(errs...))
}

// List merges the names from every source that can enumerate its sets.
func (f *Fallback) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, s := range f.sources {
		lister, ok := s.(Lister)
		if !ok {
			continue
		}
		names, err := lister.List(ctx)
		if err != nil {
			log.Printf("error listing question sets from %s source: %v", s.Kind(), err)
			continue
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
