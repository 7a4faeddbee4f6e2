package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id uint32

	// The number of frame rows traced by this worker and the
	// percentage of total frame area they represent.
	Rows         uint32
	FramePercent float32

	// Time spent tracing assigned rows.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}
