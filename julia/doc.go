// Package julia ray marches a 3D slice of a quaternion Julia set.
//
// The kernel works on a flat float32 buffer holding three floats per pixel. RenderPixel shades
// one pixel for one sample; RenderPass dispatches it over a whole frame in parallel. Progressive
// supersampling is done by the caller: one overwriting pass, further accumulating passes with
// different jitter, then ScaleBuffer by the reciprocal sample count.
//
// Row 0 of the buffer is the bottom of the image.
package julia
