// Implements a static analysis tool that keeps fatal exits in one place. It reports:
// 1. Usage of built-in panic() anywhere in the code
// 2. Usage of log.Fatal*/os.Exit outside of the main function in a main package
// 3. Usage of zap Fatal*/Panic*/DPanic* logger methods outside of the main function
package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const zapPath = "go.uber.org/zap"

// Analyzer reports exits that bypass the error returned to main.
var Analyzer = &analysis.Analyzer{
	Name: "fatalexit",
	Doc:  "reports panic, log.Fatal, os.Exit and zap Fatal/Panic calls outside of the main function in main package",
	Run:  run,
	Requires: []*analysis.Analyzer{
		inspect.Analyzer,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.FuncDecl)(nil),
	}

	inMain := false

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.FuncDecl:
			inMain = pass.Pkg.Name() == "main" && node.Name.Name == "main" && node.Recv == nil
		case *ast.CallExpr:
			if ident, ok := node.Fun.(*ast.Ident); ok && ident.Name == "panic" {
				if _, isBuiltin := pass.TypesInfo.Uses[ident].(*types.Builtin); isBuiltin {
					pass.Reportf(ident.Pos(), "found usage of panic")
				}
				return
			}
			if inMain {
				return
			}
			sel, ok := node.Fun.(*ast.SelectorExpr)
			if !ok {
				return
			}
			fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok || fn.Pkg() == nil {
				return
			}
			if name, ok := fatalCall(fn); ok {
				pass.Reportf(node.Pos(), "found usage of %s outside of main function", name)
			}
		}
	})

	return nil, nil
}

// fatalCall reports whether fn terminates the program and returns its display name.
func fatalCall(fn *types.Func) (string, bool) {
	sig, _ := fn.Type().(*types.Signature)
	path := fn.Pkg().Path()

	if sig == nil || sig.Recv() == nil {
		switch path + "." + fn.Name() {
		case "log.Fatal", "log.Fatalf", "log.Fatalln", "os.Exit":
			return fn.Pkg().Name() + "." + fn.Name(), true
		}
		return "", false
	}

	if path != zapPath {
		return "", false
	}
	for _, prefix := range []string{"Fatal", "Panic", "DPanic"} {
		if strings.HasPrefix(fn.Name(), prefix) {
			return "zap " + fn.Name(), true
		}
	}
	return "", false
}
