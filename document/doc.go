// Package document loads PDFs, image files and web resources into the
// in-memory page representation consumed by the OCR pipeline.
//
// A Document is an ordered collection of pages, each carrying a decoded
// image. PDF pages additionally carry their native text layer when one is
// present, which lets callers skip OCR for born-digital documents.
//
// Supported inputs:
//
//	doc, err := document.FromPDF("report.pdf")
//	doc, err := document.FromImage("scan.png")
//	doc, err := document.FromImages("page1.jpg", "page2.jpg")
//	doc, err := document.FromURL("https://example.com/invoice.png")
//	doc, err := document.FromWebpage("https://example.com/article")
package document
