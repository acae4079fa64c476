// Package batch applies a file of write operations to indexes.
//
// A batch file is YAML:
//
//	operations:
//	  - op: insert
//	    index: products
//	    values: {id: 1, title: phone, tags: [3, 7]}
//	  - op: update
//	    index: products
//	    values: {price: 10}
//	    where: id = 1
//	  - op: truncate
//	    index: drafts
package batch

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sphinx/dialect/sphinxql"
)

// Operation verbs.
const (
	OpInsert   = "insert"
	OpReplace  = "replace"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpTruncate = "truncate"
)

// File is a parsed batch file.
type File struct {
	Operations []Operation `yaml:"operations"`
}

// Operation is a single write. Where is a literal condition, required for
// update and delete.
type Operation struct {
	Op     string         `yaml:"op"`
	Index  string         `yaml:"index"`
	Values map[string]any `yaml:"values"`
	Where  string         `yaml:"where"`
}

// Writer executes write operations. *sphinx.Indexer implements it.
type Writer interface {
	Insert(ctx context.Context, index string, values map[string]any) (int64, error)
	Replace(ctx context.Context, index string, values map[string]any) (int64, error)
	Update(ctx context.Context, index string, values map[string]any, where sphinxql.UpdatePredicate) (int64, error)
	Delete(ctx context.Context, index string, where sphinxql.DeletePredicate) (int64, error)
	Truncate(ctx context.Context, index string) error
}

// Report summarizes an applied batch.
type Report struct {
	Applied      int
	Failed       int
	RowsAffected int64
}

// ReadFile parses and validates the batch file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses and validates a batch file.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("batch: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every operation and reports all problems at once.
func (f *File) Validate() error {
	errs := new(multierror.Error)
	for i, op := range f.Operations {
		if op.Index == "" {
			errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: missing index", i))
		}
		switch op.Op {
		case OpInsert, OpReplace:
			if len(op.Values) == 0 {
				errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: %s without values", i, op.Op))
			}
			errs = multierror.Append(errs, validateValues(i, op.Values)...)
		case OpUpdate:
			if len(op.Values) == 0 {
				errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: update without values", i))
			}
			errs = multierror.Append(errs, validateValues(i, op.Values)...)
			if op.Where == "" {
				errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: update without where", i))
			}
		case OpDelete:
			if op.Where == "" {
				errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: delete without where", i))
			}
		case OpTruncate:
		default:
			errs = multierror.Append(errs, fmt.Errorf("batch: operation %d: unknown op %q", i, op.Op))
		}
	}
	return errs.ErrorOrNil()
}

// Apply runs the operations in order. With keepGoing, a failed operation
// does not stop the batch and all failures are returned together.
func Apply(ctx context.Context, w Writer, f *File, keepGoing bool) (Report, error) {
	var (
		rep  Report
		errs = new(multierror.Error)
	)
	for i, op := range f.Operations {
		if err := ctx.Err(); err != nil {
			return rep, multierror.Append(errs, err).ErrorOrNil()
		}
		n, err := apply(ctx, w, op)
		if err != nil {
			rep.Failed++
			errs = multierror.Append(errs, fmt.Errorf("batch: operation %d (%s %s): %w", i, op.Op, op.Index, err))
			if !keepGoing {
				break
			}
			continue
		}
		rep.Applied++
		rep.RowsAffected += n
	}
	return rep, errs.ErrorOrNil()
}

func apply(ctx context.Context, w Writer, op Operation) (int64, error) {
	switch op.Op {
	case OpInsert:
		return w.Insert(ctx, op.Index, Values(op.Values))
	case OpReplace:
		return w.Replace(ctx, op.Index, Values(op.Values))
	case OpUpdate:
		return w.Update(ctx, op.Index, Values(op.Values), sphinxql.Literal(op.Where))
	case OpDelete:
		return w.Delete(ctx, op.Index, sphinxql.Literal(op.Where))
	case OpTruncate:
		return 0, w.Truncate(ctx, op.Index)
	default:
		return 0, fmt.Errorf("unknown op %q", op.Op)
	}
}

// Values converts decoded YAML values to statement values. Integer lists
// become multi-value attributes.
func Values(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = value(v)
	}
	return out
}

func value(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	if mva, ok := toMVA(list); ok {
		return mva
	}
	return v
}

func toMVA(list []any) (sphinxql.MVA, bool) {
	mva := make(sphinxql.MVA, 0, len(list))
	for _, e := range list {
		n, ok := e.(int)
		if !ok {
			return nil, false
		}
		mva = append(mva, int64(n))
	}
	return mva, true
}

// validateValues reports list values that are not integer lists.
func validateValues(i int, values map[string]any) []error {
	var errs []error
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if list, ok := values[k].([]any); ok {
			if _, ok := toMVA(list); !ok {
				errs = append(errs, fmt.Errorf("batch: operation %d: value %q: list items must be integers", i, k))
			}
		}
	}
	return errs
}
