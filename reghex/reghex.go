package reghex

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"

	"github.com/js216/fw-utils/regmap"
)

// WordStride is the number of image bytes occupied by one register.
const WordStride = 4

// Image decodes an Intel HEX stream into a register image of regCount
// words, regWidth bits each. Byte address 4*n of the hex image holds the
// least significant byte of register n. Addresses beyond the register
// window and words exceeding the register width are errors.
func Image(r io.Reader, regWidth, regCount int) ([]uint32, error) {
	if regWidth < 1 || regWidth > regmap.MaxRegBits {
		return nil, &regmap.ConfigError{Reason: "register width must be 1 through 32 bits"}
	}

	if regCount < 1 {
		return nil, &regmap.ConfigError{Reason: "image must cover at least one register"}
	}

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("parse intel hex: %w", err)
	}

	img := make([]uint32, regCount)
	for _, seg := range mem.GetDataSegments() {
		for i, b := range seg.Data {
			addr := int(seg.Address) + i
			reg := addr / WordStride
			if reg >= regCount {
				return nil, &regmap.RangeError{
					What: "image address",
					Got:  uint64(addr),
					Max:  uint64(regCount*WordStride - 1),
				}
			}

			img[reg] |= uint32(b) << uint(8*(addr%WordStride))
		}
	}

	limit, err := regmap.Mask32(0, regWidth)
	if err != nil {
		return nil, err
	}

	for reg, word := range img {
		if word&^limit != 0 {
			return nil, &regmap.RangeError{
				What: fmt.Sprintf("register %d image word", reg),
				Got:  uint64(word),
				Max:  uint64(limit),
			}
		}
	}

	return img, nil
}

// Load decodes an Intel HEX stream sized to the device's register window
// and bulk-imports it via Device.Load. The hardware callbacks are not
// invoked; the physical device is assumed to already hold the image.
func Load(d *regmap.Device, r io.Reader) error {
	img, err := Image(r, d.RegWidth(), d.Size())
	if err != nil {
		return err
	}

	return d.Load(img)
}
