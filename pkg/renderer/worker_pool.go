package renderer

import (
	"sync"
)

// workerPool fans one render pass out over a fixed set of goroutines. Tiles
// are queued up front on a closed channel, so idle workers simply pull the
// next tile until the queue drains or the pass is cancelled.
type workerPool struct {
	handle     *RenderHandle
	pass       *renderPass
	taskQueue  chan *Tile
	numWorkers int
	wg         sync.WaitGroup
}

func newWorkerPool(h *RenderHandle, pass *renderPass, tiles []*Tile, numWorkers int) *workerPool {
	taskQueue := make(chan *Tile, len(tiles))
	for _, tile := range tiles {
		taskQueue <- tile
	}
	close(taskQueue)

	return &workerPool{
		handle:     h,
		pass:       pass,
		taskQueue:  taskQueue,
		numWorkers: numWorkers,
	}
}

// Start launches the workers and returns a channel closed once all of them exit
func (wp *workerPool) Start() <-chan struct{} {
	done := make(chan struct{})
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
	go func() {
		wp.wg.Wait()
		close(done)
	}()
	return done
}

// run is the main worker loop
func (wp *workerPool) run() {
	defer wp.wg.Done()

	for tile := range wp.taskQueue {
		if !wp.handle.renderTile(wp.pass, tile) {
			return
		}
	}
}
