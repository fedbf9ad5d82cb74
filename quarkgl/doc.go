// Package quarkgl is a small software 3D renderer for diagram-style scenes.
//
// A Scene holds meshes made of line segments and flat triangles. The Renderer
// projects them through the scene camera and rasterizes into a Target:
//
//	Scene → View → Projection → Clip → Raster → Target.
//
// Line segments are drawn after triangles and may be translucent; the RGB565
// target blends them over what is already in the buffer. There is no GPU
// path and the renderer does not allocate per frame once the depth buffer
// matches the target size.
package quarkgl
