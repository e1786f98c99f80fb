package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_At(t *testing.T) {
	r := Row{"a", nil, 3}
	assert.Equal(t, "a", r.At(0))
	assert.Nil(t, r.At(1))
	assert.Equal(t, 3, r.At(2))
	assert.Nil(t, r.At(3))
	assert.Nil(t, r.At(-1))
	assert.Nil(t, Row(nil).At(0))
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"blank", "   ", ""},
		{"trimmed", "  Cảm cúm \n", "Cảm cúm"},
		{"nan", math.NaN(), ""},
		{"whole float", 12.0, "12"},
		{"fraction", 1.5, "1.5"},
		{"int", 7, "7"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"blank", " ", 0, false},
		{"text", "abc", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"int", 4, 4, true},
		{"int64", int64(9), 9, true},
		{"float whole", 3.0, 3, true},
		{"float truncates", 3.7, 3, true},
		{"string int", " 42 ", 42, true},
		{"string float", "5.0", 5, true},
		{"negative", "-2", -2, true},
		{"dotted code is not an int", "1.2.3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodePrefix(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"dotted", "1.1", 1, true},
		{"multi dotted", "12.3.4", 12, true},
		{"plain", "7", 7, true},
		{"float cell", 2.5, 2, true},
		{"empty", "", 0, false},
		{"nil", nil, 0, false},
		{"leading dot", ".5", 0, false},
		{"letters", "A.1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodePrefix(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
