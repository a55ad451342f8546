package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryOpTypeString(t *testing.T) {
	tests := []struct {
		op   BinaryOpType
		want string
	}{
		{Add, "+"},
		{Subtract, "-"},
		{Multiply, "*"},
		{Divide, "/"},
		{Modulo, "%"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestBinaryOpTypeStringInvalid(t *testing.T) {
	invalid := BinaryOpType(255)
	assert.Equal(t, "", invalid.String())
}

func TestCompareOpTypeString(t *testing.T) {
	tests := []struct {
		op   CompareOpType
		want string
	}{
		{LessThan, "<"},
		{LessThanOrEqual, "<="},
		{Equal, "=="},
		{NotEqual, "!="},
		{GreaterThan, ">"},
		{GreaterThanOrEqual, ">="},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestCompareOpTypeStringInvalid(t *testing.T) {
	invalid := CompareOpType(255)
	assert.Equal(t, "", invalid.String())
}

func TestBinaryOpTypeConstants(t *testing.T) {
	assert.Equal(t, BinaryOpType(1), Add)
	assert.Equal(t, BinaryOpType(2), Subtract)
	assert.Equal(t, BinaryOpType(3), Multiply)
	assert.Equal(t, BinaryOpType(4), Divide)
	assert.Equal(t, BinaryOpType(5), Modulo)
}

func TestCompareOpTypeConstants(t *testing.T) {
	assert.Equal(t, CompareOpType(1), LessThan)
	assert.Equal(t, CompareOpType(2), LessThanOrEqual)
	assert.Equal(t, CompareOpType(3), Equal)
	assert.Equal(t, CompareOpType(4), NotEqual)
	assert.Equal(t, CompareOpType(5), GreaterThan)
	assert.Equal(t, CompareOpType(6), GreaterThanOrEqual)
}
