package vm

import "math"

// Floating-point (F extension). All values are held as raw 32-bit patterns;
// binary arithmetic reinterprets operands as IEEE-754 binary32, computes the
// host-native result, and reinterprets back. The rounding-mode field is
// never inspected: the host's default rounding is used throughout, and the
// fused-multiply-add family is computed without mandated fusion.

func f32(bits uint32) float32 { return math.Float32frombits(bits) }
func bitsOf(f float32) uint32 { return math.Float32bits(f) }

func fpAdd(a, b uint32) uint32 { return bitsOf(f32(a) + f32(b)) }
func fpSub(a, b uint32) uint32 { return bitsOf(f32(a) - f32(b)) }
func fpMul(a, b uint32) uint32 { return bitsOf(f32(a) * f32(b)) }
func fpDiv(a, b uint32) uint32 { return bitsOf(f32(a) / f32(b)) }

func fpSqrt(a, _ uint32) uint32 {
	return bitsOf(float32(math.Sqrt(float64(f32(a)))))
}

// Sign-injection operates purely on bit patterns.
func fpSgnj(a, b uint32) uint32  { return (a & 0x7FFFFFFF) | (b & 0x80000000) }
func fpSgnjn(a, b uint32) uint32 { return (a & 0x7FFFFFFF) | (^b & 0x80000000) }
func fpSgnjx(a, b uint32) uint32 { return (a & 0x7FFFFFFF) | ((a ^ b) & 0x80000000) }

// FMIN/FMAX: host </> comparison on reinterpreted values; no NaN-aware
// canonicalization is attempted (see DESIGN.md's Open Question decision).
func fpMin(a, b uint32) uint32 {
	x, y := f32(a), f32(b)
	if x < y {
		return a
	}
	return b
}

func fpMax(a, b uint32) uint32 {
	x, y := f32(a), f32(b)
	if x > y {
		return a
	}
	return b
}

func fpEq(a, b uint32) uint32 { return boolU32(f32(a) == f32(b)) }
func fpLt(a, b uint32) uint32 { return boolU32(f32(a) < f32(b)) }
func fpLe(a, b uint32) uint32 { return boolU32(f32(a) <= f32(b)) }

// FCVT.W.S / FCVT.WU.S truncate toward zero and narrow to 32 bits. No stderr
// diagnostic: the ancestor's debug-print residue is omitted, per design note.
func fpCvtWS(a, _ uint32) uint32 {
	return uint32(int32(math.Trunc(float64(f32(a)))))
}

func fpCvtWUS(a, _ uint32) uint32 {
	return uint32(math.Trunc(float64(f32(a))))
}

// FCVT.S.W / FCVT.S.WU promote from 32-bit int to binary32.
func fpCvtSW(a uint32) uint32  { return bitsOf(float32(int32(a))) }
func fpCvtSWU(a uint32) uint32 { return bitsOf(float32(a)) }

// FMV.X.W / FMV.W.X move raw bit patterns with no reinterpretation.
func fpMvXW(a, _ uint32) uint32 { return a }
func fpMvWX(a uint32) uint32    { return a }

// FCLASS.S sets exactly one of ten category bits from the sign/exponent/
// mantissa decomposition.
func fpClass(a, _ uint32) uint32 {
	sign := (a >> 31) & 1
	exp := (a >> 23) & 0xFF
	frac := a & 0x7FFFFF

	switch {
	case exp == 0xFF && frac != 0:
		if frac&0x400000 != 0 {
			return 1 << 9 // quiet NaN
		}
		return 1 << 8 // signaling NaN
	case exp == 0xFF:
		if sign == 1 {
			return 1 << 0 // -inf
		}
		return 1 << 7 // +inf
	case exp == 0 && frac == 0:
		if sign == 1 {
			return 1 << 3 // -0
		}
		return 1 << 4 // +0
	case exp == 0:
		if sign == 1 {
			return 1 << 2 // -subnormal
		}
		return 1 << 5 // +subnormal
	default:
		if sign == 1 {
			return 1 << 1 // -normal
		}
		return 1 << 6 // +normal
	}
}

// Fused multiply-add family; unfused per spec.
func fpMadd(a, b, c uint32) uint32  { return bitsOf(f32(a)*f32(b) + f32(c)) }
func fpMsub(a, b, c uint32) uint32  { return bitsOf(f32(a)*f32(b) - f32(c)) }
func fpNmadd(a, b, c uint32) uint32 { return bitsOf(-f32(a)*f32(b) + f32(c)) }
func fpNmsub(a, b, c uint32) uint32 { return bitsOf(-f32(a)*f32(b) - f32(c)) }
