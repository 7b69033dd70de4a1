package cull

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// Default margins applied around the visible bounds.
const (
	DefaultMarginX = 10
	DefaultMarginY = 5

	// DefaultParallelThreshold is the batch size above which UpdateAll fans out to the worker pool.
	DefaultParallelThreshold = 512
)

// Item is a tracked object whose visibility the Culler maintains.
type Item struct {
	Handle   scene.Handle
	Position r3.Vec
	InView   bool
}

// Culler decides which tracked items lie inside the visible bounds.
type Culler interface {
	// Update sets item.InView from item.Position.
	Update(item *Item)

	// UpdateAll refreshes Position from the graph and then InView for every item.
	// Large batches are processed in parallel; each item is written by exactly one worker.
	//
	// Parameters:
	//   - graph: source of world positions (nil keeps the positions already on the items)
	//   - items: the items to update
	//
	// Returns:
	//   - int: the number of items in view
	UpdateAll(graph scene.Graph, items []*Item) int

	// SetBounds replaces the visible bounds, typically after a camera change.
	SetBounds(b common.Bounds)

	// Bounds returns the current visible bounds.
	Bounds() common.Bounds
}

type cullerImpl struct {
	bounds    common.Bounds
	marginX   float64
	marginY   float64
	threshold int
	workers   int

	poolOnce *sync.Once
	pool     worker.DynamicWorkerPool
}

var _ Culler = &cullerImpl{}

// NewCuller creates a Culler.
//
// Parameters:
//   - options: functional options to configure the culler
//
// Returns:
//   - Culler: the new culler
func NewCuller(options ...CullerBuilderOption) Culler {
	c := &cullerImpl{
		marginX:   DefaultMarginX,
		marginY:   DefaultMarginY,
		threshold: DefaultParallelThreshold,
		workers:   max(runtime.NumCPU()-1, 1),
		poolOnce:  &sync.Once{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cullerImpl) Update(item *Item) {
	if item == nil {
		return
	}
	item.InView = c.bounds.Contains(item.Position, c.marginX, c.marginY)
}

func (c *cullerImpl) UpdateAll(graph scene.Graph, items []*Item) int {
	if len(items) <= c.threshold || c.workers < 2 {
		c.updateRange(graph, items)
		return countInView(items)
	}

	// The pool is built lazily so small scenes never start workers.
	c.poolOnce.Do(func() {
		c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	})

	chunk := (len(items) + c.workers - 1) / c.workers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		part := items[start:end]
		wg.Add(1)
		id := taskID
		taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				c.updateRange(graph, part)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return countInView(items)
}

func (c *cullerImpl) updateRange(graph scene.Graph, items []*Item) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if graph != nil {
			item.Position = graph.WorldPosition(item.Handle)
		}
		c.Update(item)
	}
}

func countInView(items []*Item) int {
	n := 0
	for _, item := range items {
		if item != nil && item.InView {
			n++
		}
	}
	return n
}

func (c *cullerImpl) SetBounds(b common.Bounds) {
	c.bounds = b
}

func (c *cullerImpl) Bounds() common.Bounds {
	return c.bounds
}
