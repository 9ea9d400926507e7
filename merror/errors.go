// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of DETCOUNT.
//
//  DETCOUNT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  DETCOUNT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with DETCOUNT.  If not, see <https://www.gnu.org/licenses/>.

package merror

import (
	"fmt"
)

// RecordError reports a corpus or lexicon record which cannot
// be parsed. It is always fatal for the processed file.
type RecordError struct {
	File string
	Line int
	Msg  string
}

func (err RecordError) Error() string {
	if err.File == "" {
		return fmt.Sprintf("malformed record on line %d: %s", err.Line, err.Msg)
	}
	return fmt.Sprintf("malformed record in %s, line %d: %s", err.File, err.Line, err.Msg)
}

// ----------------------------

// InputError describes a problem with configured input
// (missing file, unsupported format etc.).
type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func NewInputError(format string, args ...any) InputError {
	return InputError{Msg: fmt.Sprintf(format, args...)}
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

// -----------------

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = fmt.Errorf("recovered panic: %w", tr)
	case string:
		err = fmt.Errorf("recovered panic: %s", tr)
	default:
		err = fmt.Errorf("recovered panic from an error of type %T", v)
	}
	return
}
