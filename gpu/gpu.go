// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu builds WebGPU HAL render pipelines for brush permutations
// and custom effects.
//
// Every descriptor is derived from the permutation's [brush.Layout]: the
// vertex layout from its required attributes, the bind group layout from its
// binding table, fixed samplers from its sampler states, and one or two
// color targets. Shader modules are generated by package wgsl and compiled
// to SPIR-V through naga.
//
// Usage:
//
//	device, queue, err := gpu.DeviceFromProvider(provider)
//	p, err := gpu.NewBrushPipeline(device, sel, gputypes.TextureFormatBGRA8Unorm)
//	defer p.Destroy()
package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned when a pipeline is created without a device.
	ErrNilDevice = errors.New("gpu: nil device")

	// ErrNoHAL is returned when a device provider does not expose its HAL
	// device and queue.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL types")
)

// DeviceFromProvider extracts the HAL device and queue of a shared GPU
// context. The provider must also implement HalDevice() any and
// HalQueue() any returning a hal.Device and a hal.Queue.
func DeviceFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, errors.Join(ErrNoHAL, errors.New("gpu: HalDevice is not hal.Device"))
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, errors.Join(ErrNoHAL, errors.New("gpu: HalQueue is not hal.Queue"))
	}
	return device, queue, nil
}
