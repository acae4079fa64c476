// Package seed generates fake documents and inserts them concurrently.
package seed

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/sync/errgroup"
)

// Kind is the kind of generated value.
type Kind string

// Value kinds.
const (
	KindWord      Kind = "word"
	KindSentence  Kind = "sentence"
	KindParagraph Kind = "paragraph"
	KindName      Kind = "name"
	KindEmail     Kind = "email"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindTimestamp Kind = "timestamp"
	KindBool      Kind = "bool"
	KindMVA       Kind = "mva"
)

var kinds = map[Kind]bool{
	KindWord: true, KindSentence: true, KindParagraph: true, KindName: true, KindEmail: true,
	KindInt: true, KindFloat: true, KindTimestamp: true, KindBool: true, KindMVA: true,
}

// Field is a generated document column.
type Field struct {
	Name string
	Kind Kind
}

// ParseFields parses "name:kind" pairs, e.g. "title:sentence".
func ParseFields(specs []string) ([]Field, error) {
	fields := make([]Field, 0, len(specs))
	for _, s := range specs {
		name, kind, ok := strings.Cut(s, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("seed: invalid field %q, expected name:kind", s)
		}
		if name == "id" {
			return nil, fmt.Errorf("seed: field id is generated")
		}
		k := Kind(strings.ToLower(kind))
		if !kinds[k] {
			return nil, fmt.Errorf("seed: unknown kind %q for field %s", kind, name)
		}
		fields = append(fields, Field{Name: name, Kind: k})
	}
	return fields, nil
}

// Generator generates documents. The same seed yields the same documents.
type Generator struct {
	faker  *gofakeit.Faker
	fields []Field
}

// NewGenerator returns a generator for the fields.
func NewGenerator(seed int64, fields []Field) *Generator {
	return &Generator{faker: gofakeit.New(seed), fields: fields}
}

// Document returns a document with the given id.
func (g *Generator) Document(id int64) map[string]any {
	doc := make(map[string]any, len(g.fields)+1)
	doc["id"] = id
	for _, f := range g.fields {
		doc[f.Name] = g.value(f.Kind)
	}
	return doc
}

func (g *Generator) value(k Kind) any {
	switch k {
	case KindWord:
		return g.faker.Word()
	case KindSentence:
		return g.faker.Sentence(8)
	case KindParagraph:
		return g.faker.Paragraph(1, 4, 10, " ")
	case KindName:
		return g.faker.Name()
	case KindEmail:
		return g.faker.Email()
	case KindInt:
		return int64(g.faker.Number(0, 1_000_000))
	case KindFloat:
		return g.faker.Float64Range(0, 1000)
	case KindTimestamp:
		return g.faker.Date().Unix()
	case KindBool:
		if g.faker.Bool() {
			return 1
		}
		return 0
	case KindMVA:
		mva := make([]int64, g.faker.Number(1, 5))
		for i := range mva {
			mva[i] = int64(g.faker.Number(1, 100))
		}
		return mva
	default:
		return nil
	}
}

// Inserter inserts documents. *sphinx.Indexer implements it.
type Inserter interface {
	Insert(ctx context.Context, index string, values map[string]any) (int64, error)
}

// Options configures Run.
type Options struct {
	Index       string
	Count       int
	StartID     int64
	Concurrency int
}

// Run generates opts.Count documents with consecutive ids and inserts them
// with at most opts.Concurrency statements in flight. It returns the total
// affected rows. The first failure cancels the remaining inserts.
func Run(ctx context.Context, ins Inserter, g *Generator, opts Options) (int64, error) {
	if opts.Index == "" {
		return 0, fmt.Errorf("seed: missing index")
	}
	if opts.StartID <= 0 {
		opts.StartID = 1
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	var total atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)
	for i := range opts.Count {
		if ctx.Err() != nil {
			break
		}
		doc := g.Document(opts.StartID + int64(i))
		eg.Go(func() error {
			n, err := ins.Insert(ctx, opts.Index, doc)
			if err != nil {
				return fmt.Errorf("seed: document %v: %w", doc["id"], err)
			}
			total.Add(n)
			return nil
		})
	}
	err := eg.Wait()
	return total.Load(), err
}
