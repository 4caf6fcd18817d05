// Package pixel implements the color model used to render to framebuffer surfaces.
//
// A [Color] is a device independent 8-bit per channel color. A [Layout] describes
// how a framebuffer packs the channels of one pixel into memory; [Coerce] and
// [Decode] convert between the two, and [Blend] composites translucent colors.
//
// The [Packed] image is compatible with Go's native [image.Image] / [draw.Image]
// interfaces.
package pixel
