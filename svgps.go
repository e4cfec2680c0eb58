// Package svgps converts vector-graphics outlines between SVG markup and a
// flat, ordered command/coordinate stream (the .svgcom canonical path
// format) intended for pen plotters and similar stroke-only devices.
//
// The package reduces every source primitive (lines, quadratic curves,
// elliptical arcs, rectangle/ellipse/circle shorthands) to the closed
// canonical vocabulary {Move, Line, Cubic, Close}, optionally removes
// outline stretches hidden behind later-painted fills ("autocut"), and
// drops sub-paths too short to be worth plotting ("polishing").
//
// The generate direction is driven by [Generate]; the render direction by
// [DecodeStream] followed by [RenderSVG]. SVG markup is turned into a
// [Document] by the svg subpackage.
//
// All occlusion decisions are geometric; nothing in this package
// rasterizes.
package svgps
