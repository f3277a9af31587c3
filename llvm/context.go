package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
)

// OwnedObject represents an LLVM object that must be disposed.
type OwnedObject interface {
	// dispose frees all the native resources associated with the object.
	dispose()
}

// Context represents an LLVM context.  A context owns every disposable object
// created through it and is not safe for concurrent use: distinct contexts may
// be used on distinct goroutines.
type Context struct {
	h handle.Handle

	// The list of LLVM objects owned by this context in creation order.
	ownedObjects []OwnedObject

	disposing bool
	disposed  bool
}

// NewContext creates a new LLVM context.
func NewContext() *Context {
	return &Context{h: handle.MustWrap(handle.Context, unsafe.Pointer(C.LLVMContextCreate()))}
}

// Handle returns the native handle of the context.
func (c *Context) Handle() handle.Handle {
	return c.h
}

// check panics if the context has already been disposed.
func (c *Context) check(op string) {
	if c == nil || c.disposed {
		errs.Fail(errs.InvalidHandle(op, handle.Context.String()))
	}
}

func (c *Context) ptr() C.LLVMContextRef {
	c.check("context")
	return C.LLVMContextRef(c.h.Pointer())
}

// takeOwnership marks the given disposable LLVM object as being owned by this
// context: this context is responsible for its disposal.
func (c *Context) takeOwnership(obj OwnedObject) {
	c.check("take ownership")
	c.ownedObjects = append(c.ownedObjects, obj)
}

// Release disposes of obj ahead of the context.  It does nothing if obj is not
// owned by c, including when it has already been released.
func (c *Context) Release(obj OwnedObject) {
	if c.disposed {
		return
	}

	for i, owned := range c.ownedObjects {
		if owned == obj {
			c.ownedObjects = append(c.ownedObjects[:i], c.ownedObjects[i+1:]...)
			obj.dispose()
			return
		}
	}
}

// forget drops obj from the owned objects without disposing of it.  The list is
// left untouched while Dispose walks it.
func (c *Context) forget(obj OwnedObject) {
	if c.disposing {
		return
	}

	for i, owned := range c.ownedObjects {
		if owned == obj {
			c.ownedObjects = append(c.ownedObjects[:i], c.ownedObjects[i+1:]...)
			return
		}
	}
}

// Owns returns whether obj is currently owned by c.
func (c *Context) Owns(obj OwnedObject) bool {
	for _, owned := range c.ownedObjects {
		if owned == obj {
			return true
		}
	}

	return false
}

// Dispose frees all the resources associated with this context: the owned
// objects, most recently created first, and then the context itself.  Calling
// Dispose more than once has no effect.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}

	c.disposing = true
	for i := len(c.ownedObjects) - 1; i >= 0; i-- {
		c.ownedObjects[i].dispose()
	}

	c.ownedObjects = nil
	C.LLVMContextDispose(C.LLVMContextRef(c.h.Pointer()))
	c.disposing = false
	c.disposed = true
}

// Disposed returns whether the context has been disposed.
func (c *Context) Disposed() bool {
	return c.disposed
}

// -----------------------------------------------------------------------------

// Iterator represents an iterator of LLVM objects.  This is needed because many
// LLVM C API's don't expose a way to access elements by index but do allow you
// to iterate over them.  The pattern for using iterators is as follows:
//
//	for it := v.Items(); it.Next(); {
//		item := it.Item()
//		..
//	}
type Iterator[T any] interface {
	// Item returns the current item the iterator is positioned over if it
	// exists.  If the item does not exist, the return value is invalid.
	Item() T

	// Next moves the iterator forward one element if an element exists. It
	// returns whether or not it was able to move the iterator forward. Next
	// should be called to get the first element.
	Next() bool
}

// Collect drains an iterator into a slice.
func Collect[T any](it Iterator[T]) []T {
	var items []T
	for it.Next() {
		items = append(items, it.Item())
	}

	return items
}

// linkedIter walks a native intrusive list using a pair of C accessors.
type linkedIter[R comparable, T any] struct {
	first   func() R
	next    func(R) R
	wrap    func(R) T
	cur     R
	started bool
	done    bool
}

func (it *linkedIter[R, T]) Item() T {
	return it.wrap(it.cur)
}

func (it *linkedIter[R, T]) Next() bool {
	if it.done {
		return false
	}

	var zero R
	if !it.started {
		it.cur = it.first()
		it.started = true
	} else {
		it.cur = it.next(it.cur)
	}

	if it.cur == zero {
		it.done = true
		return false
	}

	return true
}
