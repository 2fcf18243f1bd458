package source

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/persistence"
)

const keyPrefix = "questionset"

// Redis keeps question banks under questionset:<name>. It is also the store
// behind the admin API.
type Redis struct {
	engine *persistence.Engine
}

func NewRedis(engine *persistence.Engine) *Redis {
	return &Redis{engine: engine}
}

func (r *Redis) Kind() string {
	return "redis"
}

func key(name string) string {
	return keyPrefix + ":" + name
}

func (r *Redis) Load(ctx context.Context, name string) (common.QuestionSet, error) {
	data, err := r.engine.Get(ctx, key(name))
	if err != nil {
		if persistence.IsNotFound(err) {
			return common.QuestionSet{}, ErrNotFound
		}
		return common.QuestionSet{}, err
	}
	return common.UnmarshalQuestionSet(bytes.NewReader(data))
}

func (r *Redis) List(ctx context.Context) ([]string, error) {
	names, err := r.engine.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Save stores set in its canonical form.
func (r *Redis) Save(ctx context.Context, name string, set common.QuestionSet) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	encoded, err := set.Marshal()
	if err != nil {
		return err
	}
	if err := r.engine.Set(ctx, key(name), encoded); err != nil {
		return fmt.Errorf("error persisting question set %s: %v", name, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return r.engine.Delete(ctx, key(name))
}
