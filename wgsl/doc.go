// Package wgsl generates the GPU side of the brush compositor: one WGSL
// module per brush permutation and per custom effect, and their SPIR-V
// compilation through naga.
//
// The generated modules follow the same layout rules as the software
// compositor in package brush. Vertex and interstage structs carry exactly
// the attributes of [brush.Required], bindings follow
// [brush.Layout.Bindings], and the paint and effect stages are emitted as
// straight-line code without any runtime selection.
//
// A brush module exports a pass-through vs_main and the fs_main
// permutation. A custom pattern source must define
//
//	fn get_custom_pattern(i: In) -> vec4<f32>
//
// and may read any field of In as well as the pattern texture, its sampler
// and buffer0.opacity.
package wgsl
