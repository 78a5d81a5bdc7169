package minizinc

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/fluxgridgo/internal/compile"
)

// cycleDomainMax bounds integer cycle variables: CBC wants finite integer
// domains, so "non-negative integer" becomes 0..cycleDomainMax.
const cycleDomainMax = 10000000

// Write renders the compiled model as MiniZinc text. The original source is
// echoed first as comment lines for traceability. Output is byte-for-byte
// reproducible for the same model and source.
func Write(w io.Writer, source string, m *compile.Model) error {
	p := &printer{w: w}

	for _, line := range sourceLines(source) {
		p.printf("%% %s\n", line)
	}

	p.printf("\n%% variables\n")
	for _, v := range m.Variables {
		switch v.Domain {
		case compile.DomainCycles:
			p.printf("var 0..%d: %s;\n", cycleDomainMax, v.Name)
		default:
			p.printf("var float: %s;\n", v.Name)
		}
	}

	if m.Mode == compile.ModeRates {
		p.printf("\n%% non-negative constraints\n")
		for _, name := range m.NonNegative {
			p.printf("constraint %s >= 0;\n", name)
		}
	}

	p.printf("\n%% target constraints\n")
	for _, c := range m.TargetConstraints {
		p.printf("constraint (%s) - (%s) >= %s;\n",
			sumExpr(c.Production), sumExpr(c.Consumption), coeffExpr(c.Min))
	}

	p.printf("\n%% balance constraints\n")
	for _, c := range m.BalanceConstraints {
		p.printf("constraint (%s) >= (%s);\n", sumExpr(c.Production), sumExpr(c.Consumption))
	}

	p.printf("\n")
	switch obj := m.Objective.(type) {
	case compile.MinimizeDraw:
		p.printf("solve minimize (%s) - (%s);\n", sumExpr(obj.Consumption), sumExpr(obj.Production))
	case compile.MinimizeActivity:
		expr := strings.Join(obj.Vars, "+")
		if expr == "" {
			expr = "0"
		}
		p.printf("solve minimize %s;\n", expr)
	}

	p.printf("output [%s];\n", strings.Join(outputExprs(m), ",\n"))

	return p.err
}

// sumExpr renders a term list as a sum, seeded with a literal zero so empty
// lists stay valid expressions.
func sumExpr(terms []compile.Term) string {
	parts := make([]string, 0, len(terms)+1)
	parts = append(parts, "0")
	for _, t := range terms {
		parts = append(parts, termExpr(t))
	}
	return strings.Join(parts, "+")
}

func termExpr(t compile.Term) string {
	if t.Coeff.Den == 1 {
		return fmt.Sprintf("%d * %s", t.Coeff.Num, t.Var)
	}
	return fmt.Sprintf("%d * %s / %d", t.Coeff.Num, t.Var, t.Coeff.Den)
}

func coeffExpr(c compile.Coeff) string {
	if c.Den == 1 {
		return fmt.Sprintf("%d", c.Num)
	}
	return fmt.Sprintf("%d / %d", c.Num, c.Den)
}

// outputExprs builds the result-extraction directive: one conditional string
// per reaction, printing "<label> = <value>" only for strictly positive
// solutions, labels right-padded to the widest label in the model.
func outputExprs(m *compile.Model) []string {
	width := 0
	for _, out := range m.Outputs {
		if n := len(out.Label); n > width {
			width = n
		}
	}

	exprs := make([]string, 0, len(m.Outputs))
	for _, out := range m.Outputs {
		padded := fmt.Sprintf("%-*s", width, out.Label)
		var value string
		if m.Mode == compile.ModeCycles {
			value = fmt.Sprintf("%q ++ show(%s)", padded+" = ", out.Var)
		} else {
			value = fmt.Sprintf("%q ++ show_float(8, 5, %s)", padded+" =", out.Var)
		}
		exprs = append(exprs, fmt.Sprintf("if fix(%s) > 0 then %s ++ \"\\n\" else \"\" endif", out.Var, value))
	}
	return exprs
}

func sourceLines(source string) []string {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// printer folds write errors so the section emitters stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
