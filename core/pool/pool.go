// Package pool provides a fixed pool of worker goroutines for CPU-bound work.
//
// All operations in this library are pure functions over big integers, so the
// pool never needs to coordinate anything beyond "run this, give me the
// results". A nil *Pool is valid and runs everything serially.
package pool

import (
	"runtime"
	"sync"
)

// Pool is a fixed size pool of worker goroutines accepting closures.
type Pool struct {
	count int
	tasks chan func()
}

// NewPool creates a Pool with a certain number of workers.
//
// If count <= 0, this defaults to the number of available CPUs.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.GOMAXPROCS(0)
	}
	p := &Pool{count: count, tasks: make(chan func())}
	for i := 0; i < count; i++ {
		go func() {
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// TearDown releases the worker goroutines. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p != nil {
		close(p.tasks)
	}
}

// Parallelize runs f for every index in [0, count), distributing the calls
// over the pool's workers, and returns the results in index order.
func (p *Pool) Parallelize(count int, f func(i int) interface{}) []interface{} {
	results := make([]interface{}, count)
	if p == nil {
		for i := 0; i < count; i++ {
			results[i] = f(i)
		}
		return results
	}
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		i := i
		p.tasks <- func() {
			results[i] = f(i)
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

// Search queries f repeatedly from every worker until count non-nil results
// have been produced, then tells the remaining workers to stop. Results from
// losing workers are discarded.
//
// f must be safe to call concurrently.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	if p == nil {
		results := make([]interface{}, count)
		for i := 0; i < count; i++ {
			for results[i] == nil {
				results[i] = f()
			}
		}
		return results
	}

	out := make(chan interface{})
	quit := make(chan struct{})
	for i := 0; i < p.count; i++ {
		p.tasks <- func() {
			for {
				select {
				case <-quit:
					return
				default:
				}
				r := f()
				if r == nil {
					continue
				}
				select {
				case out <- r:
				case <-quit:
					return
				}
			}
		}
	}

	results := make([]interface{}, 0, count)
	for len(results) < count {
		results = append(results, <-out)
	}
	close(quit)
	return results
}
