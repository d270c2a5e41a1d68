package aln

// SeparateMarkup takes the markup rows out of the alignment and
// returns them in their current order.
func (a *Alignment) SeparateMarkup() (markup []*Row) {
	rows := a.Rows[:0]
	sel := a.Selected()
	for _, r := range a.Rows {
		if r.IsMarkup() {
			markup = append(markup, r)
		} else {
			rows = append(rows, r)
		}
	}
	for i := len(rows); i < len(a.Rows); i++ {
		a.Rows[i] = nil
	}
	a.Rows = rows
	a.sel = 0
	if sel != nil && !sel.IsMarkup() {
		a.SelectKey(sel.Key())
	}
	return
}

// owner finds the sequence row a markup row belongs to: same name and
// coordinates, otherwise the first row with the same name.
func owner(rows []*Row, m *Row) *Row {
	var byName *Row
	for _, r := range rows {
		if r.IsMarkup() || r.Name != m.Name {
			continue
		}
		if r.Start == m.Start && r.End == m.End {
			return r
		}
		if byName == nil {
			byName = r
		}
	}
	return byName
}

// ReinsertMarkup puts markup rows back, each right after the sequence
// row it belongs to. Rows without an owner go to the end. The rows are
// renumbered 1..N afterwards.
func (a *Alignment) ReinsertMarkup(markup []*Row) {
	if len(markup) == 0 {
		Order(a.Rows)
		return
	}
	sel := a.Selected()
	Order10(a.Rows)
	tail := (len(a.Rows) + 1) * 10
	for _, m := range markup {
		if r := owner(a.Rows, m); r != nil {
			m.Nr = r.Nr + 5
		} else {
			log.Debugf("no sequence for markup row %s, appending", a.FullName(m))
			m.Nr = tail
			tail++
		}
	}
	a.Rows = append(a.Rows, markup...)
	SortRows(a.Rows, ByNr)
	Order(a.Rows)
	a.sel = 0
	if sel != nil {
		a.SelectKey(sel.Key())
	}
}
