// Package model provides the intermediate representation (IR) for
// recognized document content.
//
// This package defines the user-facing data structures produced by the
// OCR pipeline, making them the primary API for consuming results.
//
// # Result Structure
//
// The [Result] type represents a complete processed document:
//
//	res := model.NewResult()
//	res.AddPage(page)
//	fmt.Println(res.Text())
//
// Each [Page] contains its pixel dimensions and a list of [Block] values;
// blocks hold [Line] values, lines hold [Word] values. Every element
// carries a bounding box in relative coordinates, so positions survive
// any rescaling of the source image.
//
// # Aggregation
//
// Text and confidence aggregate upward: a line's text joins its words
// with spaces, a block's text joins its lines with newlines, and
// confidences average over the contributing words.
//
// # Export
//
// Results render to plain text via Text, to an indented human-readable
// outline via Render, and to JSON via ExportJSON.
package model
