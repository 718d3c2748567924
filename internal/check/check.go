// Package check orchestrates the full phase pipeline over a discovered
// workspace: parse, symbol collection, exports, imports, cycle detection,
// file-role/syntax rules, semantic lowering, type checking and, for binary
// targets, executable-program emission. It is the one place that owns the
// sequencing spec.md's concurrency model describes: parsing fans out across
// files, every later phase runs sequentially in deterministic order.
package check

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/exports"
	"lumen/internal/imports"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/pkggraph"
	"lumen/internal/program"
	"lumen/internal/project"
	"lumen/internal/rules"
	"lumen/internal/semantic"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/typecheck"
	"lumen/internal/workspace"
)

// builtinFunctions names the runtime-provided callables every package sees
// without an import: spec.md §6's three runtime builtins.
var builtinFunctions = map[string]bool{"print": true, "abort": true, "assert": true}

// Result is everything a successful (non-Failure) check run produces.
type Result struct {
	Diagnostics []diag.Diagnostic
	// Programs holds the emitted executable program for every binary
	// target (a package containing a *.bin.lum file) that type-checked
	// clean, keyed by package path.
	Programs map[string]*program.Program
	// Files is the discovered workspace's file set, kept so a caller can
	// render diagnostics against source text without re-running discovery.
	Files *source.Set
}

// Ok reports whether every collected diagnostic is below Error severity.
func (r *Result) Ok() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Error {
			return false
		}
	}
	return true
}

// CheckWorkspace discovers and checks every package under root.
func CheckWorkspace(ctx context.Context, root string, jobs int, opts ...Option) (*Result, *diag.Failure) {
	return run(ctx, root, "", jobs, opts)
}

// CheckTarget checks a single package (identified by its workspace-relative
// path, e.g. "lib/collections") within the workspace rooted at root. Every
// package is still discovered and symbol-resolved so the target's imports
// see their dependencies. Type checking and program emission are
// restricted to the target package; diagnostics from parsing, symbol
// collection, export and import resolution, cycle detection and the rules
// phase are returned for every package.
func CheckTarget(ctx context.Context, root, targetPath string, jobs int, opts ...Option) (*Result, *diag.Failure) {
	if strings.TrimSpace(targetPath) == "" {
		return nil, &diag.Failure{Kind: diag.FailureInvalidCheckTarget, Message: "check target must not be empty"}
	}
	cleaned := path.Clean(filepath.ToSlash(targetPath))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return nil, &diag.Failure{Kind: diag.FailureTargetOutsideWorkspace, Message: "check target must resolve inside the workspace: " + targetPath}
	}
	return run(ctx, root, cleaned, jobs, opts)
}

func run(ctx context.Context, root, targetPath string, jobs int, opts []Option) (*Result, *diag.Failure) {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}
	if jobs < 1 {
		jobs = 1
	}

	info, statErr := os.Stat(root)
	if statErr != nil {
		return nil, &diag.Failure{Kind: diag.FailureInvalidWorkspaceRoot, Message: "workspace root does not exist: " + root, Cause: statErr}
	}
	if !info.IsDir() {
		return nil, &diag.Failure{Kind: diag.FailureWorkspaceRootNotDirectory, Message: "workspace root is not a directory: " + root}
	}
	if _, found, err := project.FindProjectManifest(root); err != nil || !found {
		return nil, &diag.Failure{Kind: diag.FailureWorkspaceRootMissingManifest, Message: "no " + project.ManifestName + " found at or above " + root, Cause: err}
	}

	ws, wsErr := workspace.Discover(root)
	if wsErr != nil {
		return nil, &diag.Failure{Kind: diag.FailureWorkspaceDiscoveryFailed, Message: wsErr.Error(), Cause: wsErr}
	}

	if targetPath != "" {
		found := false
		for _, p := range ws.Packages {
			if p.Path == "workspace/"+targetPath || (targetPath == "." && p.Path == "workspace") {
				found = true
				break
			}
		}
		if !found {
			return nil, &diag.Failure{Kind: diag.FailurePackageNotFound, Message: "no package at " + targetPath}
		}
	}

	units, parseErr := parseFilesParallel(ctx, ws, jobs, o)
	if parseErr != nil {
		return nil, &diag.Failure{Kind: diag.FailureBuildFailed, Message: "parse fan-out failed", Cause: parseErr}
	}

	all := diag.NewBag()
	for i := range units {
		for _, d := range units[i].bag.Diagnostics() {
			all.Add(d)
		}
	}

	tables := make(map[source.PackageID]*symbols.Table, len(ws.Packages))
	for _, pkg := range ws.Packages {
		tables[pkg.ID] = symbols.NewTable(pkg.ID)
	}
	for i := range units {
		u := &units[i]
		if u.bag.HasErrors() {
			continue
		}
		symbols.Collect(u.file, u.pkg, tables[u.pkg], all)
	}

	for _, pkg := range ws.Packages {
		var files []*ast.File
		for i := range units {
			if units[i].pkg == pkg.ID && !units[i].bag.HasErrors() {
				files = append(files, units[i].file)
			}
		}
		exports.Resolve(files, tables[pkg.ID], all)
	}

	reg := imports.NewRegistry()
	for _, pkg := range ws.Packages {
		reg.Register(pkg.Path, tables[pkg.ID])
	}

	graph := pkggraph.New()
	for _, pkg := range ws.Packages {
		graph.AddNode(pkg.Path)
	}
	resolvedImports := make(map[source.FileID][]imports.ResolvedImport, len(units))
	for i := range units {
		u := &units[i]
		if u.bag.HasErrors() {
			continue
		}
		localNames := map[string]bool{}
		for _, name := range tables[u.pkg].Names() {
			localNames[name] = true
		}
		resolved := imports.Resolve(u.file, reg, localNames, all)
		resolvedImports[u.id] = resolved
		from := ws.PackageOf(u.id).Path
		for _, r := range resolved {
			graph.AddEdge(from, r.PackagePath)
		}
	}
	pkggraph.FindFirstCycle(graph, source.Span{File: source.FileID(0)}, all)

	for i := range units {
		u := &units[i]
		if u.bag.HasErrors() {
			continue
		}
		rules.CheckFileRole(u.file, u.role, u.isManifest, all)
		rules.CheckImportOrder(u.file, all)
		rules.CheckDocCommentPlacement(u.file, all)
	}

	programs := map[string]*program.Program{}
	for _, pkg := range ws.Packages {
		if targetPath != "" && pkg.Path != "workspace/"+targetPath && !(targetPath == "." && pkg.Path == "workspace") {
			continue
		}

		names := nominalNames(units, pkg.ID)
		for fid, resolved := range resolvedImports {
			if ws.PackageOf(fid).ID != pkg.ID {
				continue
			}
			for _, r := range resolved {
				for _, b := range r.Bindings {
					if isNominalKind(b.Symbol.Kind) {
						names[b.LocalName] = true
					}
				}
			}
		}
		registry := typecheck.NewTypeRegistry(pkg.ID, names)

		for i := range units {
			u := &units[i]
			if u.pkg != pkg.ID || u.bag.HasErrors() {
				continue
			}

			o.emit(Event{File: u.path, Stage: StageTypeCheck, Status: StatusWorking})
			semantic.Lower(u.file, builtinFunctions)

			checkerBag := diag.NewBag()
			checker := typecheck.NewChecker(u.file, pkg.ID, registry, checkerBag)
			checker.CheckFile()
			for _, d := range checkerBag.Diagnostics() {
				all.Add(d)
			}

			if checkerBag.HasErrors() {
				o.emit(Event{File: u.path, Stage: StageTypeCheck, Status: StatusError})
			} else {
				o.emit(Event{File: u.path, Stage: StageTypeCheck, Status: StatusDone})
			}

			if u.role == source.RoleBinary && !checkerBag.HasErrors() {
				programs[pkg.Path] = program.Emit(u.file, checker, pkg.Path)
			}
		}
	}

	sortDiagnostics(ws, all)
	return &Result{Diagnostics: all.Diagnostics(), Programs: programs, Files: ws.Files}, nil
}

type fileUnit struct {
	id         source.FileID
	path       string
	pkg        source.PackageID
	role       source.Role
	isManifest bool
	file       *ast.File
	bag        *diag.Bag
}

// parseFilesParallel lexes and parses every discovered file concurrently,
// writing each result into a pre-sized slice indexed by the file's position
// in the (already sorted) discovery order so no mutex is needed to collect
// results, matching the teacher's own parallel-diagnose driver shape.
func parseFilesParallel(ctx context.Context, ws *workspace.Workspace, jobs int, o *options) ([]fileUnit, error) {
	all := ws.Files.All()
	units := make([]fileUnit, len(all))
	if len(all) == 0 {
		return units, nil
	}
	for _, f := range all {
		o.emit(Event{File: f.Path, Stage: StageParse, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(all)))

	for i, f := range all {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			o.emit(Event{File: f.Path, Stage: StageParse, Status: StatusWorking})
			bag := diag.NewBag()
			raw := lexer.New(f.ID, f.Text).Tokenize()
			toks := lexer.InsertStatementTerminators(raw)
			parsed := parser.Parse(f.ID, toks, bag)

			units[i] = fileUnit{
				id:         f.ID,
				path:       f.Path,
				pkg:        f.Package,
				role:       f.Role,
				isManifest: source.IsManifest(path.Base(f.Path)),
				file:       parsed,
				bag:        bag,
			}
			if bag.HasErrors() {
				o.emit(Event{File: f.Path, Stage: StageParse, Status: StatusError})
			} else {
				o.emit(Event{File: f.Path, Stage: StageParse, Status: StatusDone})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// nominalNames collects every struct/enum/interface/union/type-alias name
// declared anywhere in pkg, across every one of its files.
func nominalNames(units []fileUnit, pkg source.PackageID) map[string]bool {
	names := map[string]bool{}
	for i := range units {
		u := &units[i]
		if u.pkg != pkg || u.bag.HasErrors() {
			continue
		}
		for _, declID := range u.file.Decls {
			d := u.file.DeclArena.Get(declID)
			if isNominalKind(d.Kind) {
				names[d.Name] = true
			}
		}
	}
	return names
}

func isNominalKind(k ast.DeclKind) bool {
	switch k {
	case ast.DeclStruct, ast.DeclEnum, ast.DeclInterface, ast.DeclUnion, ast.DeclTypeAlias:
		return true
	default:
		return false
	}
}

// sortDiagnostics enforces spec.md §5's rendering order: (path, line,
// column, message).
func sortDiagnostics(ws *workspace.Workspace, bag *diag.Bag) {
	diags := bag.Diagnostics()
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		pa := filePathOf(ws, a.Span.File)
		pb := filePathOf(ws, b.Span.File)
		if pa != pb {
			return pa < pb
		}
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		if a.Span.StartColumn != b.Span.StartColumn {
			return a.Span.StartColumn < b.Span.StartColumn
		}
		return a.Message < b.Message
	})
}

func filePathOf(ws *workspace.Workspace, id source.FileID) string {
	if int(id) >= ws.Files.Len() {
		return ""
	}
	return ws.Files.File(id).Path
}
