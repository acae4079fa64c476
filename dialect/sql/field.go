package sql

// PredicateFunc is a constraint type for predicate functions.
// It allows generic field types to work with any predicate type that is
// based on func(*Selector).
type PredicateFunc interface {
	~func(*Selector)
}

// FieldEQ returns a selector option that filters on name = v.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(EQ(name, v)) }
}

// FieldNEQ returns a selector option that filters on name <> v.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(NEQ(name, v)) }
}

// FieldGT returns a selector option that filters on name > v.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GT(name, v)) }
}

// FieldGTE returns a selector option that filters on name >= v.
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GTE(name, v)) }
}

// FieldLT returns a selector option that filters on name < v.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LT(name, v)) }
}

// FieldLTE returns a selector option that filters on name <= v.
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LTE(name, v)) }
}

// FieldBetween returns a selector option that filters on name BETWEEN lo AND hi.
func FieldBetween(name string, lo, hi any) func(*Selector) {
	return func(s *Selector) { s.Where(Between(name, lo, hi)) }
}

// FieldIn is a generic selector option that filters on name IN (vs...).
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(In(name, anys(vs)...)) }
}

// FieldNotIn is a generic selector option that filters on name NOT IN (vs...).
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(NotIn(name, anys(vs)...)) }
}

func anys[T any](vs []T) []any {
	v := make([]any, len(vs))
	for i := range vs {
		v[i] = vs[i]
	}
	return v
}

// IntField is a generic integer attribute that provides type-safe predicate methods.
//
// Usage:
//
//	var GroupID = sql.IntField[sphinxql.Filter]("group_id")
//	searcher.Search(ctx, "products", GroupID.In(1, 2))
type IntField[P PredicateFunc] string

// Name returns the field name.
func (f IntField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f IntField[P]) EQ(v int64) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f IntField[P]) NEQ(v int64) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f IntField[P]) In(vs ...int64) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f IntField[P]) NotIn(vs ...int64) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f IntField[P]) GT(v int64) P { return P(FieldGT(string(f), v)) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f IntField[P]) GTE(v int64) P { return P(FieldGTE(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f IntField[P]) LT(v int64) P { return P(FieldLT(string(f), v)) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f IntField[P]) LTE(v int64) P { return P(FieldLTE(string(f), v)) }

// Between returns a predicate that checks if the field is within [lo, hi].
func (f IntField[P]) Between(lo, hi int64) P { return P(FieldBetween(string(f), lo, hi)) }

// FloatField is a generic float attribute that provides type-safe predicate methods.
type FloatField[P PredicateFunc] string

// Name returns the field name.
func (f FloatField[P]) Name() string { return string(f) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f FloatField[P]) GT(v float64) P { return P(FieldGT(string(f), v)) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f FloatField[P]) GTE(v float64) P { return P(FieldGTE(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f FloatField[P]) LT(v float64) P { return P(FieldLT(string(f), v)) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f FloatField[P]) LTE(v float64) P { return P(FieldLTE(string(f), v)) }

// Between returns a predicate that checks if the field is within [lo, hi].
func (f FloatField[P]) Between(lo, hi float64) P { return P(FieldBetween(string(f), lo, hi)) }

// StringField is a generic string attribute that provides type-safe predicate methods.
type StringField[P PredicateFunc] string

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField[P]) EQ(v string) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f StringField[P]) In(vs ...string) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P { return P(FieldNotIn(string(f), vs...)) }

// BoolField is a generic boolean attribute that provides type-safe predicate methods.
type BoolField[P PredicateFunc] string

// Name returns the field name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f BoolField[P]) EQ(v bool) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f BoolField[P]) NEQ(v bool) P { return P(FieldNEQ(string(f), v)) }
