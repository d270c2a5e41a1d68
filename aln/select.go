package aln

// Selected returns the selected row or nil.
func (a *Alignment) Selected() *Row {
	if a.sel == 0 || a.sel > len(a.Rows) {
		return nil
	}
	return a.Rows[a.sel-1]
}

// SelectedIndex returns the index of the selected row, -1 if none.
func (a *Alignment) SelectedIndex() int {
	if a.Selected() == nil {
		return -1
	}
	return a.sel - 1
}

// Select makes row i the selected row. A negative index clears the
// selection.
func (a *Alignment) Select(i int) {
	if i < 0 || i >= len(a.Rows) {
		a.sel = 0
		return
	}
	a.sel = i + 1
}

// SelectKey selects the row equal to k and reports if it was found.
func (a *Alignment) SelectKey(k Key) bool {
	i := AlignFind(a.Rows, k)
	a.Select(i)
	return i >= 0
}

// SelectedSequence returns the selected row if it is a sequence row.
func (a *Alignment) SelectedSequence() (*Row, error) {
	r := a.Selected()
	if r == nil {
		return nil, ErrNoSelection
	}
	if r.IsMarkup() {
		return nil, ErrMarkupSelected
	}
	return r, nil
}

// KeepSelection runs f, which may reorder or remove rows, and then
// finds the previously selected row again by value. The selection is
// cleared if the row is gone.
func (a *Alignment) KeepSelection(f func() error) error {
	r := a.Selected()
	err := f()
	if r == nil {
		a.sel = 0
		return err
	}
	if !a.SelectKey(r.Key()) {
		log.Debugf("selected row %s no longer in the alignment", a.FullName(r))
	}
	return err
}
