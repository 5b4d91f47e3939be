package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFpAddSubMulDiv(t *testing.T) {
	a := bitsOf(3.0)
	b := bitsOf(2.0)
	assert.Equal(t, float32(5.0), f32(fpAdd(a, b)))
	assert.Equal(t, float32(1.0), f32(fpSub(a, b)))
	assert.Equal(t, float32(6.0), f32(fpMul(a, b)))
	assert.Equal(t, float32(1.5), f32(fpDiv(a, b)))
}

func TestFpSqrt(t *testing.T) {
	assert.Equal(t, float32(3.0), f32(fpSqrt(bitsOf(9.0), 0)))
}

func TestFpSgnj(t *testing.T) {
	pos := bitsOf(5.0)
	neg := bitsOf(-5.0)
	assert.Equal(t, float32(5.0), f32(fpSgnj(pos, pos)))
	assert.Equal(t, float32(-5.0), f32(fpSgnj(pos, neg)))
	assert.Equal(t, float32(-5.0), f32(fpSgnjn(pos, pos)))
	assert.Equal(t, float32(-5.0), f32(fpSgnjx(pos, neg)))
}

func TestFpMinMax(t *testing.T) {
	a := bitsOf(1.0)
	b := bitsOf(2.0)
	assert.Equal(t, a, fpMin(a, b))
	assert.Equal(t, b, fpMax(a, b))
}

func TestFpComparisons(t *testing.T) {
	a := bitsOf(1.0)
	b := bitsOf(2.0)
	assert.Equal(t, uint32(1), fpLt(a, b))
	assert.Equal(t, uint32(0), fpLt(b, a))
	assert.Equal(t, uint32(1), fpLe(a, a))
	assert.Equal(t, uint32(1), fpEq(a, a))
}

func TestFpCvtWS_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, uint32(3), fpCvtWS(bitsOf(3.9), 0))
	assert.Equal(t, uint32(0xFFFFFFFD), fpCvtWS(bitsOf(-3.9), 0)) // -3
}

func TestFpCvtSW_PromotesSignedInt(t *testing.T) {
	assert.Equal(t, float32(-5.0), f32(fpCvtSW(0xFFFFFFFB))) // -5
}

func TestFpCvtSWU_PromotesUnsignedInt(t *testing.T) {
	assert.Equal(t, float32(4294967295.0), f32(fpCvtSWU(0xFFFFFFFF)))
}

func TestFpMv_RawBitMovesPreserveBits(t *testing.T) {
	bits := uint32(0xDEADBEEF)
	assert.Equal(t, bits, fpMvXW(bits, 0))
	assert.Equal(t, bits, fpMvWX(bits))
}

func TestFpClass_AllTenCategories(t *testing.T) {
	cases := map[string]struct {
		bits uint32
		want uint32
	}{
		"-inf":       {bitsOf(float32(math.Inf(-1))), 1 << 0},
		"+inf":       {bitsOf(float32(math.Inf(1))), 1 << 7},
		"-zero":      {0x80000000, 1 << 3},
		"+zero":      {0x00000000, 1 << 4},
		"-normal":    {bitsOf(-2.5), 1 << 1},
		"+normal":    {bitsOf(2.5), 1 << 6},
		"-subnormal": {0x80000001, 1 << 2},
		"+subnormal": {0x00000001, 1 << 5},
		"sig-nan":    {0x7F800001, 1 << 8},
		"quiet-nan":  {0x7FC00000, 1 << 9},
	}
	for name, c := range cases {
		assert.Equal(t, c.want, fpClass(c.bits, 0), name)
	}
}

func TestFpFusedFamily_Unfused(t *testing.T) {
	a, b, c := bitsOf(2.0), bitsOf(3.0), bitsOf(1.0)
	assert.Equal(t, float32(7.0), f32(fpMadd(a, b, c)))  // 2*3+1
	assert.Equal(t, float32(5.0), f32(fpMsub(a, b, c)))  // 2*3-1
	assert.Equal(t, float32(-5.0), f32(fpNmadd(a, b, c))) // -(2*3)+1
	assert.Equal(t, float32(-7.0), f32(fpNmsub(a, b, c))) // -(2*3)-1
}
