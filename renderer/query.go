package renderer

import (
	"glkit/gl"
)

// Query is an asynchronous GPU query such as ANY_SAMPLES_PASSED or
// TIME_ELAPSED.
type Query struct {
	ctx    *Context
	handle gl.Query
	target gl.Enum

	active  bool
	pending bool
	result  uint64
}

// CreateQuery creates a query for target.
func (c *Context) CreateQuery(target gl.Enum) *Query {
	q := &Query{ctx: c, target: target}
	q.handle = c.gl.CreateQuery()
	c.track(q)
	return q
}

// Handle returns the GL query name.
func (q *Query) Handle() gl.Query { return q.handle }

// Begin starts the query. It is ignored while a previous result is pending.
func (q *Query) Begin() {
	if q.active || q.pending {
		return
	}
	q.ctx.gl.BeginQuery(q.target, q.handle)
	q.active = true
}

// End ends the query; the result becomes available asynchronously.
func (q *Query) End() {
	if !q.active {
		return
	}
	q.ctx.gl.EndQuery(q.target)
	q.active = false
	q.pending = true
}

// Ready polls for the result and reports whether Result is up to date.
func (q *Query) Ready() bool {
	if !q.pending {
		return !q.active
	}
	if q.ctx.gl.GetQueryObjectui64(q.handle, gl.QUERY_RESULT_AVAILABLE) == 0 {
		return false
	}
	q.result = q.ctx.gl.GetQueryObjectui64(q.handle, gl.QUERY_RESULT)
	q.pending = false
	return true
}

// Result returns the last result read by Ready: nanoseconds for
// TIME_ELAPSED, 0 or 1 for ANY_SAMPLES_PASSED.
func (q *Query) Result() uint64 { return q.result }

// Restore recreates the query. An in-flight result is lost.
func (q *Query) Restore() {
	q.handle = q.ctx.gl.CreateQuery()
	q.active, q.pending = false, false
}

// Delete releases the query.
func (q *Query) Delete() {
	if q.handle != 0 {
		q.ctx.gl.DeleteQuery(q.handle)
		q.handle = 0
	}
	q.ctx.untrack(q)
}
