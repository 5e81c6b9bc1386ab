// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package htmlmesh synchronizes DOM-rendered content with objects in a
// 3D scene, so that ordinary HTML appears to exist as a textured
// surface positioned, scaled, and perspective-projected consistently
// with the 3D camera.
//
// The [Renderer] maintains two parallel DOM layers (in-scene and
// overlay) that mirror the camera's projection. Once per frame of the
// scene's render loop it computes, for each tracked object that needs
// it, a 4x4 transform mapping object space into camera-relative pixel
// space, converts that to a CSS matrix3d transform, and writes it to
// the object's element. Cached camera position, field of view, device
// pixel ratio, and per-object style strings ensure that a frame in
// which nothing changed performs zero DOM writes.
//
// The 3D engine is consumed through the [Scene] and [Camera]
// interfaces; tracked objects through [TrackedObject], with [Surface]
// as a ready-made implementation. The DOM is accessed through
// [cogentcore.org/htmlmesh/dom], with drivers for the browser
// (jsdom, via syscall/js) and for headless use (memdom).
package htmlmesh
