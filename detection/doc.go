// Package detection localizes text regions on page images.
//
// A Detector takes a page image and returns word-level bounding boxes in
// relative coordinates. Detectors are selected by architecture name
// through New; the available names mirror the published text-detection
// architectures plus a Tesseract-backed detector:
//
//	det, err := detection.New("db_resnet50")
//	boxes, err := det.Detect(ctx, pageImage)
//
// The DB/LinkNet/FAST names select tuned profiles of an ink-map detector:
// the page is binarized with a local threshold, speckles are removed by
// morphological opening, characters are fused into word blobs by
// horizontal dilation, and connected components become candidate boxes
// scored by their ink density. The "tesseract" name delegates region
// segmentation to the OCR engine (requires the ocr build tag).
package detection
