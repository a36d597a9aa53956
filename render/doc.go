// Package render paints tessellations onto bounded surfaces.
//
// A Surface is a fixed-size pixel area with a background color. Canvas is
// the in-memory implementation backed by image.RGBA and exported as PNG;
// SVG writes the same picture as one <rect> per cell.
//
// Tessellation walks every materialized node of a lattice graph, picks a
// palette color that no already colored neighbor uses, and paints the
// node's cells scaled by an integer factor. Cells outside the surface or
// already painted are skipped, so a partially visible tiling is fine.
package render
