package core

// MaxChannel is the largest value a color channel can take
const MaxChannel = 255.0

// ClampColor clamps each channel to [0, MaxChannel]
func (v Vec3) ClampColor() Vec3 {
	return v.Clamp(0, MaxChannel)
}

// ToRGB converts a color to three 8-bit channels. Channels are clamped
// first and fractional parts truncated.
func (v Vec3) ToRGB() [3]uint8 {
	c := v.ClampColor()
	return [3]uint8{uint8(c.X), uint8(c.Y), uint8(c.Z)}
}

// ColorFromRGB builds a color from three 8-bit channels
func ColorFromRGB(r, g, b uint8) Vec3 {
	return Vec3{X: float64(r), Y: float64(g), Z: float64(b)}
}
