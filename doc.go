// Package checkerboard removes baked-in checkerboard "transparency" from
// RGBA images.
//
// Some exporters flatten the transparency grid into the pixels, leaving a
// dark/light grey checkerboard where the alpha channel should have been
// zero. The package classifies pixels that match the known checkerboard
// tones and grows the existing transparent region through 4-connected
// matching pixels, clearing their alpha. Colour channels are never touched.
// Everything runs in memory on a single image at a time.
package checkerboard
