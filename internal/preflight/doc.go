// Package preflight provides readiness checks for the binaries and
// filesystem paths letterbox depends on.
//
// These checks run in two contexts:
//   - The "letterbox check" command uses RunAll to display tool and
//     directory health.
//   - The workflow runner calls CheckFreeSpace before transcoding and logs a
//     warning when the output directory looks too small. It never fails the
//     run on that basis.
package preflight
