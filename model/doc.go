// Package model provides the shared data types for page layout analysis
// and rail navigation.
//
// # Geometry
//
// [Point] and [BBox] use the raster coordinate convention: the origin is
// the top-left corner of the page, X increases rightward and Y increases
// downward, with all values in page points.
//
// # Layout structure
//
// A detection run produces a [PageAnalysis]: an ordered list of
// [LayoutBlock] values, each carrying its bounding box, layout class,
// confidence, reading-order position, and (for navigable classes) the
// [LineBand] list describing its text lines.
//
// # Layout classes
//
// The 23-entry class table in [LayoutClasses] matches the PP-DocLayoutV3
// detector. [DefaultNavigableClasses] selects the readable-text subset
// used by rail navigation.
package model
