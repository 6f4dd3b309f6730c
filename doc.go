// Package printdesk turns a photo into a simulated instant-camera print and
// manages the resulting prints as draggable objects on a virtual desktop.
//
// The package has two halves that share one geometric contract.
//
// The compositing pipeline ([Compositor], [ApplyFilter], [LookupFrame])
// deterministically rasterizes a source image into a framed, filtered,
// captioned print. Placement inside the frame's photo region is
// translate → rotate → scale about the region center, expressed by
// [PlacementAffine].
//
// The interactive half mirrors that contract. [Editor] is an [Ebitengine]
// preview surface that re-renders the pending print live while the user pans,
// zooms, and rotates; on confirm the frozen [TransformState] is handed
// unchanged to the Compositor, so the exported bitmap matches the preview.
// [Desk] owns the confirmed prints as [FloatingObject] values, animating each
// through its eject/settle entrance (tweens via [gween]) and thereafter
// routing drag, pinch, wheel, and rotate gestures to the topmost hit object.
//
// Persistence is a thin boundary: [Store] is the only external interface, with
// [MemoryStore] for the anonymous/local scope and [SQLiteStore] for a durable
// on-disk gallery.
//
// A complete runnable app lives in examples/desktop.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package printdesk
