package render

import (
	"strconv"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// columnWidth is a star length for proportional columns, Auto otherwise
func columnWidth(c *ast.TableColumn) string {
	if c == nil || c.Width <= 0 {
		return "Auto"
	}
	return strconv.FormatFloat(c.Width, 'f', -1, 64) + "*"
}

// cellAlignment resolves the alignment of the cell at position pos in its
// row. An unset or out-of-range column index falls back to the position,
// and the result is clamped to the last column.
func cellAlignment(columns []*ast.TableColumn, cell *ast.TableCell, pos int) ast.Alignment {
	count := len(columns)
	if count == 0 {
		return ast.AlignNone
	}
	idx := cell.ColumnIndex
	if idx < 0 || idx >= count {
		idx = pos
	}
	if idx >= count {
		idx = count - 1
	}
	if columns[idx] == nil {
		return ast.AlignNone
	}
	return columns[idx].Alignment
}

func renderTable(r *Renderer, n ast.Node) (err error) {
	t, ok := ast.As[*ast.Table](n)
	if !ok {
		return mismatch(n, "table")
	}
	w := r.w
	obj, err := w.BeginObject(xaml.TypeTable)
	if err != nil {
		return err
	}
	defer obj.End(&err)
	if err := w.WriteStyleReference("", styles.TableStyleKey); err != nil {
		return err
	}

	if err := r.tableColumns(t); err != nil {
		return err
	}

	groups, err := w.BeginCollection("RowGroups")
	if err != nil {
		return err
	}
	defer groups.End(&err)

	group, err := w.BeginObject(xaml.TypeTableRowGroup)
	if err != nil {
		return err
	}
	defer group.End(&err)

	rows, err := w.BeginCollection("Rows")
	if err != nil {
		return err
	}
	defer rows.End(&err)

	for _, row := range t.Rows {
		if row == nil {
			continue
		}
		if err := r.tableRow(t, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) tableColumns(t *ast.Table) (err error) {
	w := r.w
	cols, err := w.BeginCollection("Columns")
	if err != nil {
		return err
	}
	defer cols.End(&err)

	for _, c := range t.Columns {
		col, err := w.BeginObject(xaml.TypeTableColumn)
		if err != nil {
			return err
		}
		err = w.WriteMember("Width", columnWidth(c))
		if cerr := col.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) tableRow(t *ast.Table, row *ast.TableRow) (err error) {
	w := r.w
	obj, err := w.BeginObject(xaml.TypeTableRow)
	if err != nil {
		return err
	}
	defer obj.End(&err)
	if row.Header {
		if err := w.WriteStyleReference("", styles.TableHeaderStyleKey); err != nil {
			return err
		}
	}

	cells, err := w.BeginCollection("Cells")
	if err != nil {
		return err
	}
	defer cells.End(&err)

	for i, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if err := r.tableCell(t, cell, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) tableCell(t *ast.Table, cell *ast.TableCell, pos int) (err error) {
	w := r.w
	obj, err := w.BeginObject(xaml.TypeTableCell)
	if err != nil {
		return err
	}
	defer obj.End(&err)
	if err := w.WriteStyleReference("", styles.TableCellStyleKey); err != nil {
		return err
	}

	if cell.ColumnSpan > 1 {
		if err := w.WriteMember("ColumnSpan", cell.ColumnSpan); err != nil {
			return err
		}
	}
	if cell.RowSpan > 1 {
		if err := w.WriteMember("RowSpan", cell.RowSpan); err != nil {
			return err
		}
	}
	if a := cellAlignment(t.Columns, cell, pos); a != ast.AlignNone {
		if err := w.WriteMember("TextAlignment", a.String()); err != nil {
			return err
		}
	}

	blocks, err := w.BeginCollection("Blocks")
	if err != nil {
		return err
	}
	defer blocks.End(&err)
	return r.WriteAll(cell.Blocks)
}
