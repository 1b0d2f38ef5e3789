package render

// Scope is the release handle of an object, member or collection. End
// runs at most once, so it is safe to both defer it and call it early.
//
//	s, err := w.BeginObject(xaml.TypeParagraph)
//	if err != nil {
//		return err
//	}
//	defer s.End(&err)
type Scope struct {
	w     *Writer
	frame *frame
	index int
	done  bool
}

// End releases the scope. A release error is stored in *errp unless it
// already holds an error; errp may be nil.
func (s *Scope) End(errp *error) {
	if s == nil || s.done {
		return
	}
	s.done = true
	err := s.w.unwind(s)
	if errp != nil && *errp == nil {
		*errp = err
	}
}

// Close releases the scope and returns the release error
func (s *Scope) Close() error {
	var err error
	s.End(&err)
	return err
}

// Released reports whether End has run
func (s *Scope) Released() bool {
	return s == nil || s.done
}
