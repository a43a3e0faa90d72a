// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is a CPU driver for compiled brush shaders.
//
// It rasterizes triangle lists into texture targets the way a GPU would:
// coverage is decided by edge functions at pixel centers, attributes are
// interpolated barycentrically (flat attributes take the first vertex of
// each triangle), and pixels are shaded in 2x2 quads so derivatives are
// available even along primitive edges. Only covered pixels are written.
//
// Rows are split into bands that are shaded concurrently on a
// work-stealing pool. Bands never share pixels, so writes need no
// locking.
//
//	r := raster.NewRenderer(0)
//	defer r.Close()
//	err := r.DrawRect(ctx, raster.Target{Color: dst}, sh, &res, corners)
package raster
