package annotation

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

type level int8

func TestNormalize(t *testing.T) {
	text := "plain"
	stamp := time.Date(2014, 7, 29, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "x", "x"},
		{"bool", true, true},
		{"int", 3, int64(3)},
		{"int32", int32(-4), int64(-4)},
		{"named int", level(5), int64(5)},
		{"uint64", uint64(9), int64(9)},
		{"float32", float32(1.5), 1.5},
		{"float64", 2.25, 2.25},
		{"NaN", math.NaN(), nil},
		{"infinity", math.Inf(1), math.Inf(1)},
		{"bytes", []byte("raw"), "raw"},
		{"nil bytes", []byte(nil), nil},
		{"pointer", &text, "plain"},
		{"nil pointer", (*string)(nil), nil},
		{"json int", json.Number("12"), int64(12)},
		{"json float", json.Number("1.25"), 1.25},
		{"time", stamp, "2014-07-29T12:00:00Z"},
		{"uuid", id, id.String()},
		{"uuid bytes", [16]byte(id), id.String()},
		{"pgtype text", pgtype.Text{String: "t", Valid: true}, "t"},
		{"pgtype null text", pgtype.Text{}, nil},
		{"pgtype int", pgtype.Int4{Int32: 8, Valid: true}, int64(8)},
		{"numeric integer", pgtype.Numeric{Int: big.NewInt(42), Exp: 0, Valid: true}, int64(42)},
		{"numeric decimal", pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}, 123.45},
		{"numeric NaN", pgtype.Numeric{NaN: true, Valid: true}, nil},
		{"numeric null", pgtype.Numeric{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, graph.IsScalar(got), "%T is not a graph scalar", got)
		})
	}
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"uint64 overflow", uint64(math.MaxUint64)},
		{"slice", []int{1}},
		{"map", map[string]any{"a": 1}},
		{"struct", struct{ A int }{1}},
		{"malformed json number", json.Number("1e")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			require.Error(t, err)
			assert.True(t, graph.IsInvariantViolation(err))
		})
	}
}
