// Package reghex loads register images from Intel HEX files.
//
// Host tools commonly ship register defaults as Intel HEX dumps produced
// by vendor configuration software. This package decodes such a dump
// into one 32-bit word per register (little-endian, 4-byte stride) and
// bulk-imports it into a regmap.Device, which assumes the physical
// device already holds the same values (see regmap.Device.Load).
//
//	f, err := os.Open("defaults.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	if err := reghex.Load(dev, f); err != nil {
//	    log.Fatal(err)
//	}
//
// Parsing is delegated to github.com/marcinbor85/gohex; this package
// adds the register-window interpretation and width validation.
package reghex
