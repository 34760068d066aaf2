package letterbox

import "fmt"

// FilterExpression renders the scale+pad filter for target. The source is
// scaled by min(W/(sar*iw), H/ih) so both sides fit, then centered on a W x H
// canvas. Commas inside min() are escaped so ffmpeg does not split the filter
// chain there.
func FilterExpression(target TargetFrame) string {
	w, h := target.Width, target.Height
	factor := fmt.Sprintf(`min(%d/(sar*iw)\,%d/ih)`, w, h)
	scale := fmt.Sprintf("scale=(sar*iw)*%s:ih*%s", factor, factor)
	pad := fmt.Sprintf("pad=%d:%d:(%d-(sar*iw)*%s)/2:(%d-ih*%s)/2", w, h, w, factor, h, factor)
	return scale + ", " + pad
}
