// modules.go — import resolution, the module cache and native modules
//
// OVERVIEW
// --------
// Three import surfaces share one resolver:
//
//	import a.b          binds 'a' with 'a.b' reachable through it
//	import a.b as m     binds 'm' directly to the loaded module
//	import "x.wf"       executes the file into the importing scope
//	from a.b import {x} copies named exports into the importing scope
//
// A dotted path a.b maps to the script file a/b.wf, searched in the
// importing file's directory, then the working directory, then each entry
// of Config.SearchPath. Native modules registered on the interpreter are
// consulted before any file lookup, so a bundled module always wins over a
// same-named script.
//
// Loaded modules are cached per interpreter by their dotted name and
// evaluated exactly once, in a fresh environment whose parent is the
// global scope. The loading stack turns import cycles into an ImportError
// instead of unbounded recursion.
package wolfera

import (
	"os"
	"path/filepath"
	"strings"
)

const scriptExt = ".wf"

func (ip *Interpreter) evalImport(node *ImportNode, env *Env) Result {
	mod, err := ip.loadModule(node.Path, node.Span())
	if err != nil {
		return failRes(err)
	}
	modVal := Value{Tag: VTModule, Data: mod}
	if node.Alias != "" {
		env.Define(node.Alias, modVal)
		return okRes(Null())
	}
	// No alias: wrap the leaf so a.b is reachable as a.b from the top
	// name. Each wrapper is a thin module holding only the next segment.
	for i := len(node.Path) - 2; i >= 0; i-- {
		wrapper := &Module{
			Name:    strings.Join(node.Path[:i+1], "."),
			Exports: map[string]Value{node.Path[i+1]: modVal},
		}
		modVal = Value{Tag: VTModule, Data: wrapper}
	}
	env.Define(node.Path[0], modVal)
	return okRes(Null())
}

// evalImportFile runs a quoted-path import. Unlike module imports the file
// executes directly into the importing environment and is never cached, so
// re-importing re-executes.
func (ip *Interpreter) evalImportFile(node *ImportFileNode, env *Env) Result {
	path, found := ip.resolveFile(node.Path)
	if !found {
		return failRes(ip.importErr(node.Span(), "Can't find script '"+node.Path+"'"))
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return failRes(ip.importErr(node.Span(), "Can't read script '"+node.Path+"': "+err.Error()))
	}
	return ip.evalUnit(path, string(src), env)
}

func (ip *Interpreter) evalFromImport(node *FromImportNode, env *Env) Result {
	mod, err := ip.loadModule(node.Path, node.Span())
	if err != nil {
		return failRes(err)
	}
	for _, name := range node.Names {
		v, ok := mod.Exports[name]
		if !ok {
			return failRes(ip.importErr(node.Span(), "Can't import '"+name+"' from module '"+mod.Name+"'"))
		}
		env.Define(name, v)
	}
	return okRes(Null())
}

// loadModule resolves, evaluates and caches one dotted module path.
func (ip *Interpreter) loadModule(parts []string, sp Span) (*Module, *Error) {
	key := strings.Join(parts, ".")
	if mod, ok := ip.modules[key]; ok {
		return mod, nil
	}
	for _, active := range ip.loading {
		if active == key {
			return nil, ip.importErr(sp, "Circular import of module '"+key+"'")
		}
	}

	if reg, ok := ip.natives[key]; ok {
		mod := &Module{Name: key, Exports: reg()}
		ip.modules[key] = mod
		return mod, nil
	}

	rel := filepath.Join(parts...) + scriptExt
	path, found := ip.resolveFile(rel)
	if !found {
		return nil, ip.importErr(sp, "Can't find module '"+key+"'")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, ip.importErr(sp, "Can't read module '"+key+"': "+err.Error())
	}

	ip.loading = append(ip.loading, key)
	defer func() { ip.loading = ip.loading[:len(ip.loading)-1] }()

	// Modules see the globals but define into their own frame; the frame
	// becomes the export surface.
	modEnv := NewEnv(ip.Globals)
	if res := ip.evalUnit(path, string(src), modEnv); res.Err != nil {
		return nil, res.Err
	}

	mod := &Module{Name: key, Exports: modEnv.Snapshot()}
	ip.modules[key] = mod
	return mod, nil
}

// evalUnit parses and evaluates a source unit against env, swapping the
// interpreter's current file/src so error rendering points into the right
// source.
func (ip *Interpreter) evalUnit(file, src string, env *Env) Result {
	prog, perr := Parse(file, src)
	if perr != nil {
		return failRes(perr)
	}
	prevFile, prevSrc := ip.file, ip.src
	ip.file, ip.src = file, src
	defer func() { ip.file, ip.src = prevFile, prevSrc }()
	return ip.eval(prog, env)
}

// resolveFile searches a relative script path through the import roots in
// order. Absolute paths are checked as-is.
func (ip *Interpreter) resolveFile(rel string) (string, bool) {
	if filepath.IsAbs(rel) {
		if fileExists(rel) {
			return rel, true
		}
		return "", false
	}
	var roots []string
	if ip.file != "" && !strings.HasPrefix(ip.file, "<") {
		roots = append(roots, filepath.Dir(ip.file))
	}
	roots = append(roots, ".")
	roots = append(roots, ip.cfg.SearchPath...)
	for _, root := range roots {
		cand := filepath.Join(root, rel)
		if fileExists(cand) {
			return cand, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
