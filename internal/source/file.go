package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/kwkoo/quizrunner/internal/common"
)

const fileSuffix = ".json"

// File reads <name>.json from a file system - either a directory on disk or
// the embedded docroot.
type File struct {
	fsys fs.FS
}

func NewFile(fsys fs.FS) *File {
	return &File{fsys: fsys}
}

func (f *File) Kind() string {
	return "file"
}

func (f *File) Load(ctx context.Context, name string) (common.QuestionSet, error) {
	file, err := f.fsys.Open(name + fileSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.QuestionSet{}, ErrNotFound
		}
		return common.QuestionSet{}, fmt.Errorf("error opening %s%s: %v", name, fileSuffix, err)
	}
	defer file.Close()
	return common.UnmarshalQuestionSet(file)
}

func (f *File) List(ctx context.Context) ([]string, error) {
	matches, err := fs.Glob(f.fsys, "*"+fileSuffix)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, m := range matches {
		name := strings.TrimSuffix(m, fileSuffix)
		if ValidateName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
