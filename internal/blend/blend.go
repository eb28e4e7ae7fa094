// Package blend implements the vg_lite compositing operators.
//
// All operations work on premultiplied alpha values in the range 0-255.
// S is the source pixel, D the destination, Sa and Da their alphas.
package blend

// BlendMode selects a compositing operator.
type BlendMode uint8

const (
	BlendSource          BlendMode = iota // S
	BlendSourceOver                       // S + D*(1-Sa)
	BlendDestinationOver                  // S*(1-Da) + D
	BlendSourceIn                         // S*Da
	BlendDestinationIn                    // D*Sa
	BlendMultiply                         // S*(1-Da) + D*(1-Sa) + S*D
	BlendScreen                           // S + D - S*D
	BlendAdditive                         // S + D, clamped
	BlendSubtract                         // D*(1-S)
)

// BlendFunc blends one premultiplied source pixel with one premultiplied
// destination pixel.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the blend function for mode.
// Unknown modes fall back to source-over.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendSource:
		return blendSource
	case BlendDestinationOver:
		return blendDestinationOver
	case BlendSourceIn:
		return blendSourceIn
	case BlendDestinationIn:
		return blendDestinationIn
	case BlendMultiply:
		return blendMultiply
	case BlendScreen:
		return blendScreen
	case BlendAdditive:
		return blendAdditive
	case BlendSubtract:
		return blendSubtract
	default:
		return blendSourceOver
	}
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - da
	return addClamp(mulDiv255(sr, inv), dr),
		addClamp(mulDiv255(sg, inv), dg),
		addClamp(mulDiv255(sb, inv), db),
		addClamp(mulDiv255(sa, inv), da)
}

func blendSourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendDestinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	ch := func(s, d byte) byte {
		return addClamp(addClamp(mulDiv255(s, 255-da), mulDiv255(d, 255-sa)), mulDiv255(s, d))
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db), addClamp(sa, mulDiv255(da, 255-sa))
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	ch := func(s, d byte) byte {
		v := uint16(s) + uint16(d) - uint16(mulDiv255(s, d))
		if v > 255 {
			return 255
		}
		return byte(v)
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db), ch(sa, da)
}

func blendAdditive(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

func blendSubtract(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, 255-sr), mulDiv255(dg, 255-sg), mulDiv255(db, 255-sb), mulDiv255(da, 255-sa)
}
