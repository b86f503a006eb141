package layout

import "math"

// Detection is one raw row from the layout detector, in source-bitmap
// pixel coordinates. The pipeline is agnostic to how rows were produced;
// any backend emitting (class, confidence, box) rows can feed it.
type Detection struct {
	ClassID    int
	Confidence float64
	XMin       float64
	YMin       float64
	XMax       float64
	YMax       float64

	// Order is the model-provided reading-order hint, valid only when
	// HasOrder is true. Detectors without an order head leave it unset.
	Order    int
	HasOrder bool
}

// ParseDetections converts a flat [n x cols] output tensor into detection
// rows. Columns are [class_id, confidence, xmin, ymin, xmax, ymax] with an
// optional seventh reading-order column. Rows containing NaN or infinite
// coordinates are dropped so degenerate geometry never reaches the
// downstream stages.
func ParseDetections(data []float32, cols int) []Detection {
	if cols < 6 {
		return nil
	}

	n := len(data) / cols
	detections := make([]Detection, 0, n)

	for i := 0; i < n; i++ {
		row := data[i*cols : (i+1)*cols]

		finite := true
		for _, v := range row[:6] {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				finite = false
				break
			}
		}
		if !finite {
			continue
		}

		det := Detection{
			ClassID:    int(row[0]),
			Confidence: float64(row[1]),
			XMin:       float64(row[2]),
			YMin:       float64(row[3]),
			XMax:       float64(row[4]),
			YMax:       float64(row[5]),
		}
		if cols >= 7 && !math.IsNaN(float64(row[6])) && row[6] >= 0 {
			det.Order = int(row[6])
			det.HasOrder = true
		}
		detections = append(detections, det)
	}

	return detections
}

// AllOrdered reports whether every detection carries a well-formed
// model-provided reading order. Only then is the model order trusted over
// geometric column clustering.
func AllOrdered(detections []Detection) bool {
	if len(detections) == 0 {
		return false
	}
	for _, d := range detections {
		if !d.HasOrder {
			return false
		}
	}
	return true
}
