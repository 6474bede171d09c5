package script

import (
	"strings"

	"github.com/wesleyorama2/k6gen/internal/config"
)

const indentUnit = "  "

var (
	quoteEscaper = strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
		"\u2028", `\u2028`,
		"\u2029", `\u2029`,
	)
	templateEscaper = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		"${", `\${`,
	)
	commentFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Render prints statements at the top level.
func Render(stmts []Stmt) string {
	return RenderAt(stmts, 0)
}

// RenderAt prints statements indented by level steps.
func RenderAt(stmts []Stmt, level int) string {
	p := &printer{}
	p.stmts(stmts, level)
	return p.sb.String()
}

// RenderExpr prints a single expression.
func RenderExpr(e Expr) string {
	p := &printer{}
	p.expr(e, 0)
	return p.sb.String()
}

// Quote returns s as a single-quoted JavaScript string literal.
func Quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}

type printer struct {
	sb strings.Builder
}

func (p *printer) indent(level int) {
	for i := 0; i < level; i++ {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) line(level int, s string) {
	p.indent(level)
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

func (p *printer) stmts(stmts []Stmt, level int) {
	for _, s := range stmts {
		p.stmt(s, level)
	}
}

func (p *printer) stmt(s Stmt, level int) {
	switch s := s.(type) {
	case Blank:
		p.sb.WriteByte('\n')

	case Comment:
		text := strings.TrimRight(commentFlattener.Replace(string(s)), " ")
		if text == "" {
			p.line(level, "//")
			return
		}
		p.line(level, "// "+text)

	case BlockComment:
		if s.Doc {
			p.line(level, "/**")
		} else {
			p.line(level, "/*")
		}
		for _, l := range s.Lines {
			l = strings.ReplaceAll(commentFlattener.Replace(l), "*/", "* /")
			if l == "" {
				p.line(level, " *")
				continue
			}
			p.line(level, " * "+l)
		}
		p.line(level, " */")

	case Import:
		var clause []string
		if s.Default != "" {
			clause = append(clause, s.Default)
		}
		if len(s.Names) > 0 {
			clause = append(clause, "{ "+strings.Join(s.Names, ", ")+" }")
		}
		p.line(level, "import "+strings.Join(clause, ", ")+" from "+Quote(s.From)+";")

	case Decl:
		p.indent(level)
		if s.Export {
			p.sb.WriteString("export ")
		}
		p.sb.WriteString(s.Kind + " " + s.Name + " = ")
		p.expr(s.Value, level)
		p.sb.WriteString(";\n")

	case ExprStmt:
		p.indent(level)
		p.expr(s.X, level)
		p.sb.WriteString(";\n")

	case Assign:
		p.indent(level)
		p.expr(s.Target, level)
		p.sb.WriteString(" = ")
		p.expr(s.Value, level)
		p.sb.WriteString(";\n")

	case If:
		p.indent(level)
		p.sb.WriteString("if (")
		p.expr(s.Cond, level)
		p.sb.WriteString(") {\n")
		p.stmts(s.Then, level+1)
		p.line(level, "}")

	case Func:
		switch {
		case s.Default:
			p.line(level, "export default function () {")
		case s.Export:
			p.line(level, "export function "+s.Name+"() {")
		default:
			p.line(level, "function "+s.Name+"() {")
		}
		p.stmts(s.Body, level+1)
		p.line(level, "}")

	case Switch:
		p.indent(level)
		p.sb.WriteString("switch (")
		p.expr(s.Tag, level)
		p.sb.WriteString(") {\n")
		for _, c := range s.Cases {
			p.indent(level + 1)
			p.sb.WriteString("case ")
			p.expr(c.Value, level+1)
			p.sb.WriteString(":\n")
			p.stmts(c.Body, level+2)
			p.line(level+2, "break;")
		}
		p.line(level, "}")
	}
}

func (p *printer) expr(e Expr, level int) {
	switch e := e.(type) {
	case Str:
		p.sb.WriteString(Quote(string(e)))

	case Raw:
		p.sb.WriteString(string(e))

	case Ident:
		p.sb.WriteString(string(e))

	case Template:
		p.sb.WriteByte('`')
		for _, part := range e.Parts {
			if part.Expr != nil {
				p.sb.WriteString("${")
				p.expr(part.Expr, level)
				p.sb.WriteByte('}')
				continue
			}
			p.sb.WriteString(templateEscaper.Replace(part.Text))
		}
		p.sb.WriteByte('`')

	case Member:
		p.expr(e.X, level)
		if !strings.HasPrefix(e.Name, "[") {
			p.sb.WriteByte('.')
		}
		p.sb.WriteString(e.Name)

	case Call:
		p.expr(e.Fn, level)
		p.sb.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.expr(a, level)
		}
		p.sb.WriteByte(')')

	case *Object:
		p.object(e, level)

	case Array:
		if len(e.Elems) == 0 {
			p.sb.WriteString("[]")
			return
		}
		if e.Inline {
			p.sb.WriteByte('[')
			for i, el := range e.Elems {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				p.expr(el, level)
			}
			p.sb.WriteByte(']')
			return
		}
		p.sb.WriteString("[\n")
		for _, el := range e.Elems {
			p.indent(level + 1)
			p.expr(el, level+1)
			p.sb.WriteString(",\n")
		}
		p.indent(level)
		p.sb.WriteByte(']')

	case Arrow:
		p.sb.WriteString("(" + strings.Join(e.Params, ", ") + ") => ")
		p.expr(e.Body, level)

	case FuncExpr:
		p.sb.WriteString("function () {\n")
		p.stmts(e.Body, level+1)
		p.indent(level)
		p.sb.WriteByte('}')

	case Binary:
		p.expr(e.X, level)
		p.sb.WriteString(" " + e.Op + " ")
		p.expr(e.Y, level)
	}
}

func (p *printer) object(o *Object, level int) {
	if o == nil || len(o.Props) == 0 {
		p.sb.WriteString("{}")
		return
	}
	if o.Inline {
		p.sb.WriteString("{ ")
		for i, prop := range o.Props {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.key(prop)
			p.expr(prop.Value, level)
		}
		p.sb.WriteString(" }")
		return
	}
	p.sb.WriteString("{\n")
	for _, prop := range o.Props {
		p.indent(level + 1)
		p.key(prop)
		p.expr(prop.Value, level+1)
		p.sb.WriteString(",\n")
	}
	p.indent(level)
	p.sb.WriteByte('}')
}

func (p *printer) key(prop Prop) {
	if prop.Quoted || !config.IsIdentifier(prop.Key) {
		p.sb.WriteString(Quote(prop.Key))
	} else {
		p.sb.WriteString(prop.Key)
	}
	p.sb.WriteString(": ")
}
