package regmap

// Bit-width limits for registers and fields.
const (
	// MaxRegBits is the widest supported register
	MaxRegBits = 32

	// MaxFieldBits is the widest supported field
	MaxFieldBits = 64
)

// Mask64 returns a 64-bit mask with length contiguous bits set starting
// at bit position start. The mask value is 0 when an error is returned.
func Mask64(start, length int) (uint64, error) {
	if length < 1 || length > MaxFieldBits {
		return 0, &RangeError{What: "mask length", Got: uint64(length), Max: MaxFieldBits}
	}

	if start < 0 || start >= MaxFieldBits || start+length > MaxFieldBits {
		return 0, &RangeError{What: "mask start", Got: uint64(start), Max: uint64(MaxFieldBits - length)}
	}

	mask := ^uint64(0)
	if length < MaxFieldBits {
		mask = 1<<uint(length) - 1
	}

	return mask << uint(start), nil
}

// Mask32 returns a 32-bit mask with length contiguous bits set starting
// at bit position start. For example, start=3, length=4 yields
// 0b0111_1000 (bits 3..6 set). The mask value is 0 when an error is
// returned.
func Mask32(start, length int) (uint32, error) {
	if length < 1 || length > MaxRegBits {
		return 0, &RangeError{What: "mask length", Got: uint64(length), Max: MaxRegBits}
	}

	if start < 0 || start >= MaxRegBits || start+length > MaxRegBits {
		return 0, &RangeError{What: "mask start", Got: uint64(start), Max: uint64(MaxRegBits - length)}
	}

	m, err := Mask64(start, length)
	if err != nil {
		return 0, err
	}

	return uint32(m), nil
}

// Fits reports whether val can be represented in width bits.
func Fits(val uint64, width int) bool {
	if width >= MaxFieldBits {
		// any uint64 fits a 64-bit (or wider) field
		return true
	}

	if width < 0 {
		return false
	}

	return val>>uint(width) == 0
}

func cdiv(x, y int) int {
	return (x + y - 1) / y
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
