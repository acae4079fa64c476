package sphinxql

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/sphinx/dialect/sql"
)

// Weights is an OPTION value of the form (name=weight, ...), as used by
// field_weights and index_weights.
type Weights map[string]int

type option struct {
	name  string
	value any
}

// options is the OPTION clause of SELECT and UPDATE statements. Setting a
// name twice keeps the last value.
type options []option

func (o *options) set(name string, v any) {
	for i := range *o {
		if (*o)[i].name == name {
			(*o)[i].value = v
			return
		}
	}
	*o = append(*o, option{name: name, value: v})
}

func (o options) render(b *sql.Builder) {
	if len(o) == 0 {
		return
	}
	sorted := slices.Clone(o)
	slices.SortFunc(sorted, func(x, y option) int { return strings.Compare(x.name, y.name) })
	b.WriteString(" OPTION ")
	for i, opt := range sorted {
		if i > 0 {
			b.Comma()
		}
		if !sql.ValidIdentifier(opt.name) {
			b.AddError(fmt.Errorf("sphinxql: invalid option name %q", opt.name))
		}
		b.WriteString(opt.name).WriteByte('=')
		writeOptionValue(b, opt.value)
	}
}

func writeOptionValue(b *sql.Builder, v any) {
	switch v := v.(type) {
	case Weights:
		b.WriteByte('(')
		for i, k := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				b.Comma()
			}
			if !sql.ValidIdentifier(k) {
				b.AddError(fmt.Errorf("sphinxql: invalid weight name %q", k))
			}
			b.WriteString(k).WriteByte('=').Int(v[k])
		}
		b.WriteByte(')')
	case int:
		b.Int(v)
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case sql.Raw:
		b.WriteString(string(v))
	case string:
		// Bare identifiers such as ranker names are written as-is.
		if sql.ValidIdentifier(v) {
			b.WriteString(v)
		} else {
			b.Arg(v)
		}
	default:
		b.AddError(fmt.Errorf("sphinxql: unsupported option value %T", v))
	}
}
