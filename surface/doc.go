// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides mutable drawing surfaces that back textures.
//
// A Surface is a bitmap whose dimensions and pixels may change at any time
// outside the control of the textures sampling it. Textures never own a
// surface: they observe it through texture.BindableResource and are told to
// resize or re-upload when the owner calls Update.
//
// # Surface Types
//
//   - ImageSurface: CPU-backed *image.RGBA canvas that can be resized,
//     cleared and drawn into (with optional scaling).
//
// # Usage
//
//	s := surface.NewImageSurface(300, 150)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.DrawImage(sprite, image.Pt(10, 10), nil)
//
//	// The canvas grows; bound textures learn about it on Update.
//	_ = s.Resize(600, 300)
//
// Zero-sized surfaces are allowed and represent "no content yet".
package surface
