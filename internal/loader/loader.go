package loader

import (
	"fmt"
	"go/ast"
	"path/filepath"
	"reflect"
	"strings"
	"unsafe"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"

	"github.com/stefanreuther/accidental-build/rules"

	// make ixgo happy
	_ "github.com/stefanreuther/accidental-build/internal/ixgo"
	_ "github.com/stefanreuther/accidental-build/internal/loader/pkg/golang.org/x/mod/semver"
)

// classfileMain represents a Go+ class file that can be executed.
type classfileMain interface {
	Main()
}

// structElem wraps a reflected struct element loaded from a Go+ rules file,
// giving access to its fields by name.
type structElem struct {
	elem reflect.Value
}

// newStructElem looks up the struct type by name, instantiates it, and
// executes its Main method.
func newStructElem(interp *ixgo.Interp, structName string) (*structElem, error) {
	typ, ok := interp.GetType(structName)
	if !ok {
		return nil, fmt.Errorf("failed to load rules script: struct name not found: %s", structName)
	}
	val := reflect.New(typ)

	val.Interface().(classfileMain).Main()

	return &structElem{elem: val.Elem()}, nil
}

// value retrieves a struct field by name, exported or not.
func (e *structElem) value(name string) any {
	return valueOf(e.elem, name)
}

// unexportValueOf creates a reflect.Value that allows access to unexported
// fields.
func unexportValueOf(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// valueOf retrieves the value of a field by name from a struct element,
// handling both exported and unexported fields.
func valueOf(elem reflect.Value, name string) any {
	field := elem.FieldByName(name)
	if ast.IsExported(name) {
		return field.Interface()
	}
	return unexportValueOf(field).Interface()
}

// Loader loads Go+ rules scripts (*_build.gox) through ixgo and returns the
// onRules callback each script registers. It implements rules.Loader.
type Loader struct {
	ctx *ixgo.Context
}

// New creates a Loader with a fresh ixgo context.
func New() *Loader {
	return &Loader{ctx: ixgo.NewContext(ixgo.SupportMultipleInterp)}
}

// Load builds and executes the rules script at path and returns its
// registered callback. The file name must follow the classfile pattern
// "{StructName}_build.gox".
func (l *Loader) Load(path string) (rules.ScriptFunc, error) {
	lookupFn := l.ctx.Lookup
	defer func() {
		l.ctx.Lookup = lookupFn
	}()

	setupGoModResolver(l.ctx)

	interp, err := load(l.ctx, path)
	if err != nil {
		return nil, err
	}
	defer interp.ResetIcall()

	structName, _, ok := strings.Cut(filepath.Base(path), "_")
	if !ok {
		return nil, fmt.Errorf("failed to load rules script: file name is not valid: %s", path)
	}

	elem, err := newStructElem(interp, structName)
	if err != nil {
		return nil, err
	}

	fn, _ := elem.value("fOnRules").(func(*rules.Build))
	if fn == nil {
		return nil, fmt.Errorf("rules script %s registered no onRules callback", path)
	}
	return fn, nil
}

// load builds and loads a Go+ directory, returning an initialized
// interpreter.
func load(ctx *ixgo.Context, path string) (*ixgo.Interp, error) {
	source, err := xgobuild.BuildDir(ctx, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return nil, err
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return nil, err
	}
	if err = interp.RunInit(); err != nil {
		return nil, err
	}
	return interp, nil
}

// setupGoModResolver configures the ixgo context to resolve imports of
// arbitrary Go modules from rules scripts.
func setupGoModResolver(ctx *ixgo.Context) {
	resolver := newResolver()

	ctx.Lookup = func(_, path string) (dir string, found bool) {
		return resolver.Lookup(path, path)
	}
}
