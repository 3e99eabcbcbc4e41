package contexttimer

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Decorator wraps functions so that every call is timed and reported.
// A Decorator is immutable and may be shared between goroutines.
type Decorator struct {
	cfg config
}

// TimedWith returns a Decorator configured by opts. Apply it with Wrap or one
// of the typed helpers.
func TimedWith(opts ...Option) *Decorator {
	return &Decorator{cfg: newConfig(opts)}
}

// Timed wraps f with default options: RealClock, factor 1, output to stdout.
// Reports use the runtime name of f, so an anonymous function shows up as
// something like "pkg.Caller.func1"; use TimedWith(WithName(...)) to label it.
func Timed[F any](f F) F {
	return Wrap(TimedWith(), f)
}

// Wrap returns a function with the same signature as f. Each call runs f with
// the given arguments, reports the elapsed time and returns f's results.
// The report is emitted even when f panics; the panic then continues.
//
// Wrap panics if f is nil or not a function.
func Wrap[F any](d *Decorator, f F) F {
	fv := reflect.ValueOf(f)
	if fv.Kind() != reflect.Func {
		panic(fmt.Sprintf("contexttimer: Wrap of non-func %T", f))
	}
	if fv.IsNil() {
		panic("contexttimer: Wrap of nil func")
	}
	name := d.nameOf(fv)
	variadic := fv.Type().IsVariadic()
	wrapped := reflect.MakeFunc(fv.Type(), func(args []reflect.Value) []reflect.Value {
		defer d.scope(name)()
		if variadic {
			return fv.CallSlice(args)
		}
		return fv.Call(args)
	})
	return wrapped.Interface().(F)
}

// Name returns the name reports use for f.
func (d *Decorator) Name(f any) string {
	return d.nameOf(reflect.ValueOf(f))
}

// Func wraps a niladic function without reflection.
func (d *Decorator) Func(name string, f func()) func() {
	name = d.named(name)
	return func() {
		defer d.scope(name)()
		f()
	}
}

// FuncErr wraps f; the error is returned after the report.
func (d *Decorator) FuncErr(name string, f func() error) func() error {
	name = d.named(name)
	return func() error {
		defer d.scope(name)()
		return f()
	}
}

// FuncCtx wraps a context-aware function.
func (d *Decorator) FuncCtx(name string, f func(context.Context) error) func(context.Context) error {
	name = d.named(name)
	return func(ctx context.Context) error {
		defer d.scope(name)()
		return f(ctx)
	}
}

// Call times a single call of f and returns its results unchanged.
func Call[T any](d *Decorator, name string, f func() (T, error)) (T, error) {
	defer d.scope(d.named(name))()
	return f()
}

// scope starts a fresh timer and returns the function that stops it and
// reports. Callers defer the result.
func (d *Decorator) scope(name string) func() {
	t := newTimer(d.cfg).Start()
	return func() {
		t.Stop()
		d.cfg.report(name, t)
	}
}

func (d *Decorator) named(name string) string {
	if d.cfg.name != "" {
		return d.cfg.name
	}
	return name
}

func (d *Decorator) nameOf(fv reflect.Value) string {
	if d.cfg.name != "" {
		return d.cfg.name
	}
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(fv.Pointer())
	if fn == nil {
		return ""
	}
	return shortName(fn.Name())
}

// shortName trims the import path from a runtime function name:
// "github.com/a/b.(*T).Method" becomes "b.(*T).Method".
func shortName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	return full
}
