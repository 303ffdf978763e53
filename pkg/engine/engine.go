// Package engine provides the Lisp scripting front end for scadtree.
// It wraps zygomys in a sandboxed environment, evaluates user source into a
// scene-graph object, and renders the resulting OpenSCAD script.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/scadtree/pkg/scad"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for scadtree evaluation. It is safe
// for concurrent use; each call to Evaluate creates a fresh sandboxed
// environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source and produces the rendered OpenSCAD script.
// Each call creates a fresh zygomys sandbox.
//
// Return semantics:
//   - On success: script + nil errors + nil error
//   - On parse/eval failure: "" + eval errors + nil error
//   - On fatal failure (timeout, panic, serialization): "" + nil + error
func (e *Engine) Evaluate(source string) (string, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		script, evalErrs, err := e.evaluate(source)
		ch <- evalResult{script: script, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (string, []EvalError, error) {
	// Empty source is a valid program that produces an empty script.
	if strings.TrimSpace(source) == "" {
		return "", nil, nil
	}

	// Sandbox mode prevents user code from reaching the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	reg := &registry{}
	registerBuiltins(env, reg)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return "", parseZygomysError(err), nil
	}

	result, err := env.Run()
	if err != nil {
		return "", parseZygomysError(err), nil
	}

	// (emit obj) selects the root explicitly; otherwise the script's final
	// expression must itself be an object.
	root := reg.root
	if root == nil {
		if obj, ok := result.(*sexpObject); ok {
			root = &obj.obj
		}
	}
	if root == nil {
		return "", []EvalError{{
			Message: "script produced no object; call (emit obj) or end with an object expression",
		}}, nil
	}

	script, err := scad.Render(root.ToCommand())
	if err != nil {
		return "", nil, fmt.Errorf("serialize: %w", err)
	}
	return script, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers when the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
