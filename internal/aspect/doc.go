// Package aspect decides whether a video already has a 16:9 frame.
//
// The Inspector asks ffprobe for the first video stream's width and height and
// classifies the pair with Classify. A resolution counts as 16:9 when the width
// is a multiple of 16 and the height a multiple of 9. That is a coarse proxy
// for the true ratio: 1280x720 passes, 1366x768 does not, and 16x18 does.
//
// Failures at the ffprobe boundary surface as *ProbeError so callers can tell a
// missing binary from malformed output without string matching.
package aspect
