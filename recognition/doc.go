// Package recognition transcribes cropped word images into text.
//
// A Recognizer takes a batch of word crops and returns one transcription
// per crop, in order. Recognizers are selected by architecture name
// through New; the names mirror the published text-recognition
// architectures:
//
//	reco, err := recognition.New("crnn_vgg16_bn")
//	words, err := reco.Recognize(ctx, crops)
//
// Every name selects a tuned profile of an engine-backed recognizer that
// shapes each crop to a fixed input height, restricts the engine to the
// profile's vocabulary and runs it in single-line mode. Output is
// Unicode-normalized and filtered to the active vocabulary so every
// profile yields text drawn from a known character set.
package recognition
