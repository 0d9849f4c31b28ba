// Package main provides the scalargrad CLI: it evaluates an arithmetic
// expression and prints the gradient of the result with respect to each
// variable.
//
// Usage:
//
//	scalargrad version
//	scalargrad eval -set x=3 '4*x^5'
//	scalargrad eval -set x=3 -- -x^2
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/expr"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() { printUsage(flag.CommandLine.Output()) }
	flag.Parse()

	if err := run(flag.Args(), os.Stdout); err != nil {
		klog.Fatalf("scalargrad: %+v", err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "scalargrad - reverse-mode autodiff over scalar expressions")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  eval       Evaluate an expression and its gradients")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Example:")
	fmt.Fprintln(w, "  scalargrad eval -set x=3 '4*x^5'")
	fmt.Fprintln(w, "  scalargrad eval -set x=3 -- -x^2    (use -- before an expression starting with '-')")
}

// run dispatches a subcommand, writing results to w.
func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		printUsage(w)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(w, "scalargrad %s\n", version)
		return nil
	case "eval":
		return evalCommand(args[1:], w)
	default:
		printUsage(w)
		return errors.Errorf("unknown command %q", args[0])
	}
}

// bindings collects repeated -set name=value flags.
type bindings map[string]float64

func (b bindings) String() string {
	parts := make([]string, 0, len(b))
	for name, x := range b {
		parts = append(parts, name+"="+strconv.FormatFloat(x, 'g', -1, 64))
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func (b bindings) Set(s string) error {
	name, x, err := expr.ParseBinding(s)
	if err != nil {
		return err
	}
	b[name] = x
	return nil
}

func evalCommand(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(w)
	vars := bindings{}
	fs.Var(vars, "set", "bind a variable, as name=value (repeatable)")
	noColor := fs.Bool("no-color", false, "disable colors in the output table")
	seed := fs.Float64("seed", 1, "gradient seeded at the output")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "eval")
	}

	src := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(src) == "" {
		return errors.New("eval: missing expression")
	}
	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	n, err := expr.Parse(src)
	if err != nil {
		return errors.Wrapf(err, "eval: parsing %q", src)
	}
	names := expr.Variables(n)
	for _, name := range names {
		if _, ok := vars[name]; !ok {
			klog.Warningf("variable %q is not bound, using 0", name)
			vars[name] = 0
		}
	}

	g := autodiff.NewGraph()
	var (
		out     autodiff.Value
		leaves  map[string]autodiff.Value
		evalErr error
	)
	if err := exceptions.TryCatch[error](func() {
		out, leaves, evalErr = expr.EvalNode(g, n, vars)
		if evalErr == nil {
			out.BackwardWithGrad(*seed)
		}
	}); err != nil {
		return errors.Wrap(err, "eval")
	}
	if evalErr != nil {
		return errors.Wrapf(evalErr, "eval: building %q", src)
	}
	klog.V(1).Infof("evaluated %s", n)

	fmt.Fprintln(w, renderGradients(names, leaves))
	fmt.Fprintf(w, "%s = %s\n", src, formatFloat(out.Data()))
	fmt.Fprintf(w, "nodes: %s\n", humanize.Comma(int64(g.NumNodes())))
	return nil
}

// renderGradients renders one row per variable: name, value and gradient.
func renderGradients(names []string, leaves map[string]autodiff.Value) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("variable", "value", "gradient")

	for _, name := range names {
		v := leaves[name]
		t.Row(name, formatFloat(v.Data()), formatFloat(v.Grad()))
	}
	return t.String()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
