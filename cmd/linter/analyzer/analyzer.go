// Package analyzer reports calls that only the program entry point may make:
// terminating the process, panicking and printing straight to stdout.
package analyzer

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic, log.Fatal, os.Exit and fmt.Print calls outside main function"
)

// Analyzer checks for calls that are allowed only inside func main.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// mainOnly lists package functions that may be called from main only.
var mainOnly = map[string]map[string]string{
	"log": {
		"Fatal":   "log.Fatal",
		"Fatalf":  "log.Fatal",
		"Fatalln": "log.Fatal",
	},
	"github.com/rs/zerolog/log": {
		"Fatal": "log.Fatal",
		"Panic": "log.Panic",
	},
	"os": {
		"Exit": "os.Exit",
	},
	"fmt": {
		"Print":   "fmt.Print",
		"Printf":  "fmt.Print",
		"Println": "fmt.Print",
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		callExpr := node.(*ast.CallExpr)
		if isTestFile(pass, callExpr) {
			return true
		}
		checkCall(pass, callExpr, isInMainFunction(stack))
		return true
	})

	return nil, nil
}

// isInMainFunction reports whether the innermost top-level declaration on
// stack is func main. stack[0] is the file.
func isInMainFunction(stack []ast.Node) bool {
	if len(stack) < 2 {
		return false
	}
	funcDecl, ok := stack[1].(*ast.FuncDecl)
	return ok && funcDecl.Recv == nil && funcDecl.Name.Name == "main"
}

func isTestFile(pass *analysis.Pass, node ast.Node) bool {
	return strings.HasSuffix(pass.Fset.Position(node.Pos()).Filename, "_test.go")
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr, inMain bool) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "panic" && isBuiltin(pass, fn) {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		if inMain {
			return
		}
		if name, ok := forbiddenOutsideMain(pass, fn); ok {
			pass.Reportf(callExpr.Pos(), "%s is forbidden outside main function", name)
		}
	}
}

func isBuiltin(pass *analysis.Pass, ident *ast.Ident) bool {
	if pass.TypesInfo == nil {
		return true
	}
	_, ok := pass.TypesInfo.Uses[ident].(*types.Builtin)
	return ok
}

func forbiddenOutsideMain(pass *analysis.Pass, selectorExpr *ast.SelectorExpr) (string, bool) {
	ident, ok := selectorExpr.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return "", false
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", false
	}

	funcs, ok := mainOnly[pkgName.Imported().Path()]
	if !ok {
		return "", false
	}

	name, ok := funcs[selectorExpr.Sel.Name]
	return name, ok
}
