package rv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFlag(t *testing.T) {
	testCases := []struct {
		in       any
		expected any
	}{
		{"True", true},
		{"False", false},
		{"true", "true"},
		{"false", "false"},
		{"1", "1"},
		{"", ""},
		{true, true},
		{nil, nil},
		{0, 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CoerceFlag(tc.in), "CoerceFlag(%#v)", tc.in)
	}
}

func TestTruthy(t *testing.T) {
	var nilPtr *int
	one := 1

	testCases := []struct {
		in       any
		expected bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"false", true},
		{"no", true},
		{0, false},
		{2, true},
		{0.0, false},
		{uint(3), true},
		{[]string{}, false},
		{[]string{"x"}, true},
		{map[string]int{}, false},
		{nilPtr, false},
		{&one, true},
		{struct{}{}, true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Truthy(tc.in), "Truthy(%#v)", tc.in)
	}
}
