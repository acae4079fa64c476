package sphinxql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name      string
		input     *InsertBuilder
		wantKind  Kind
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "single",
			input:     Insert("foo").Values(map[string]any{"foo": "bar"}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `foo` (`foo`) VALUES (?)",
			wantArgs:  []any{"bar"},
		},
		{
			name:      "replace",
			input:     Replace("foo").Values(map[string]any{"foo": "bar"}),
			wantKind:  KindReplace,
			wantQuery: "REPLACE INTO `foo` (`foo`) VALUES (?)",
			wantArgs:  []any{"bar"},
		},
		{
			name:      "sorted_columns",
			input:     Insert("products").Values(map[string]any{"title": "phone", "id": 1, "body": "a phone"}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`body`, `id`, `title`) VALUES (?, ?, ?)",
			wantArgs:  []any{"a phone", 1, "phone"},
		},
		{
			name:      "mva",
			input:     Insert("products").Values(map[string]any{"id": 1, "tags": []int{3, 7}}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`id`, `tags`) VALUES (?, (?, ?))",
			wantArgs:  []any{1, int64(3), int64(7)},
		},
		{
			name:      "empty_mva",
			input:     Insert("products").Values(map[string]any{"id": 1, "tags": []uint32{}}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`id`, `tags`) VALUES (?, ())",
			wantArgs:  []any{1},
		},
		{
			name:      "explicit_mva",
			input:     Insert("products").Values(map[string]any{"tags": MVA{9}}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`tags`) VALUES ((?))",
			wantArgs:  []any{int64(9)},
		},
		{
			name: "values_replace_previous",
			input: Insert("products").
				Values(map[string]any{"title": "phone"}).
				Values(map[string]any{"id": 2}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`id`) VALUES (?)",
			wantArgs:  []any{2},
		},
		{
			name:      "into",
			input:     Insert("foo").Into("products").Values(map[string]any{"id": 2}),
			wantKind:  KindInsert,
			wantQuery: "INSERT INTO `products` (`id`) VALUES (?)",
			wantArgs:  []any{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.input.Err())
			assert.Equal(t, tt.wantKind, tt.input.Kind())
			query, args, err := NewPlatform().Render(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestInsertValuesCloned(t *testing.T) {
	values := map[string]any{"id": 1}
	ins := Insert("products").Values(values)
	values["title"] = "phone"

	assert.Equal(t, []string{"id"}, ins.Columns())
	query, _ := ins.Query()
	assert.Equal(t, "INSERT INTO `products` (`id`) VALUES (?)", query)
}

func TestInsertErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   *InsertBuilder
		wantErr error
	}{
		{"missing_index", Insert("").Values(map[string]any{"id": 1}), ErrMissingIndex},
		{"missing_values", Insert("products"), ErrEmptyValues},
		{"empty_values", Replace("products").Values(map[string]any{}), ErrEmptyValues},
		{"missing_both", Insert(""), ErrMissingIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.input.Err(), tt.wantErr)
			_, _, err := NewPlatform().Render(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInsertInvalidColumn(t *testing.T) {
	for _, column := range []string{"a` , `b", "title)", "x y", "`id`", "*", "1col", ""} {
		t.Run(column, func(t *testing.T) {
			ins := Insert("foo").Values(map[string]any{"id": 1, column: "v"})
			err := ins.Err()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid column name")
			query, args, err := NewPlatform().Render(ins)
			require.Error(t, err)
			assert.Empty(t, query)
			assert.Nil(t, args)
		})
	}
}

func TestInsertMVAOverflow(t *testing.T) {
	ins := Insert("foo").Values(map[string]any{"id": 1, "tags": []uint64{1, 1 << 63}})
	err := ins.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MVA value 9223372036854775808 overflows int64")
	_, _, err = NewPlatform().Render(ins)
	require.Error(t, err)

	query, args, err := NewPlatform().Render(Insert("foo").Values(map[string]any{"tags": []uint64{1<<63 - 1}}))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `foo` (`tags`) VALUES ((?))", query)
	assert.Equal(t, []any{int64(1<<63 - 1)}, args)
}
