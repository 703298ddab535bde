package renderer

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders one tile and reports the work it took
type TileFunc func(tile *Tile) RenderStats

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile  *Tile
	Stats RenderStats
	Error error
}

// WorkerPool renders tiles in parallel. Tasks and results flow through
// buffered channels sized for one full frame, so submitting every tile
// before reading any result never blocks.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	render      TileFunc
	group       errgroup.Group
}

// NewWorkerPool creates a worker pool with numWorkers workers and room for
// capacity queued tiles
func NewWorkerPool(numWorkers, capacity int, render TileFunc) *WorkerPool {
	return &WorkerPool{
		taskQueue:   make(chan TileTask, capacity),
		resultQueue: make(chan TileResult, capacity),
		numWorkers:  max(1, numWorkers),
		render:      render,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.group.Go(wp.run)
	}
}

// Stop closes the task queue and waits for the workers to drain it
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() error {
	for task := range wp.taskQueue {
		wp.resultQueue <- wp.renderTile(task)
	}
	return nil
}

// renderTile turns a panic while rendering into a tile error so the
// dispatcher still receives one result per task
func (wp *WorkerPool) renderTile(task TileTask) (result TileResult) {
	result.Tile = task.Tile
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("while rendering tile %d: %v", task.Tile.ID, r)
		}
	}()

	result.Stats = wp.render(task.Tile)
	return result
}
