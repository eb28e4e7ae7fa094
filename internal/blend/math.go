package blend

// mulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
func mulDiv255(a, b byte) byte {
	return byte((uint32(a)*uint32(b) + 127) / 255)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// Premultiply converts straight alpha to premultiplied alpha.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	if a == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}

// Unpremultiply converts premultiplied alpha to straight alpha.
func Unpremultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	switch a {
	case 0:
		return 0, 0, 0, 0
	case 255:
		return r, g, b, a
	}
	un := func(c byte) byte {
		v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
		if v > 255 {
			return 255
		}
		return byte(v)
	}
	return un(r), un(g), un(b), a
}

// Lerp moves d towards f by coverage/255: d + (f-d)*coverage/255.
func Lerp(d, f, coverage byte) byte {
	if coverage == 255 {
		return f
	}
	if f >= d {
		return d + mulDiv255(f-d, coverage)
	}
	return d - mulDiv255(d-f, coverage)
}
