// Package scene defines the scene document passed through the augmentation
// pipeline.
//
// A [Document] carries the canvas extents and an ordered list of shapes.
// Order is paint order: later shapes are drawn on top of earlier ones. The
// external extractor establishes that order once with [SortPaintOrder]
// (backgrounds first, then area descending) and the rules only ever append,
// so a shape's index never moves during a run.
//
// # Shapes
//
// [Shape] is a tagged union over rect, path and circle. Fields that do not
// apply to a shape's type are ignored and omitted on encode. Rects may carry
// [Decoration] sub-rectangles relative to their origin, and stripe segments
// carry IsControlledStripe so later recoloring leaves them alone.
//
// # JSON
//
// [ReadJSON] and [WriteJSON] speak the extractor's format:
//
//	{
//	  "width": 3000, "height": 3000,
//	  "shapes": [
//	    {"type": "rect", "fill": "#EAECEC", "x": 0, "y": 0, "width": 100, "height": 50},
//	    {"type": "path", "fill": "#F0CF00", "d": "M10 10L60 10L60 40Z",
//	     "parentTransforms": [{"raw": "rotate(45 1500 1500)"}]}
//	  ]
//	}
//
// Transforms decode from a bare string or a {"raw": ...} object and always
// encode as an object.
package scene
