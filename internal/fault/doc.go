// Package fault defines the error taxonomy shared by the resolution engine.
//
// Every failure raised while parsing paths, decoding variants, classifying
// layouts or resolving variables is a *Error carrying one of four kinds. The
// kind tells the caller what went wrong without string matching; the Subject
// and File fields carry the offending raw value and the declaring file.
package fault
