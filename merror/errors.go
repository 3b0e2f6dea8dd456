// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of PHONOSTAT.
//
//  PHONOSTAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  PHONOSTAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with PHONOSTAT.  If not, see <https://www.gnu.org/licenses/>.

package merror

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InputError represents an error caused by invalid user input
// (e.g. a missing corpus file or an invalid CV pattern).
type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

func NewInputError(format string, args ...any) InputError {
	return InputError{Msg: fmt.Sprintf(format, args...)}
}

// IsInputError tests whether err (or any error it wraps)
// is an InputError.
func IsInputError(err error) bool {
	var inpErr InputError
	return errors.As(err, &inpErr)
}

// ----------------------------

type InternalError struct {
	Msg string
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

func (err RecoveredError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// -----------------

// PanicValueToErr converts a value obtained via recover()
// into a RecoveredError
func PanicValueToErr(v any) error {
	switch tr := v.(type) {
	case error:
		return RecoveredError{Msg: fmt.Sprintf("recovered panic: %s", tr)}
	case string:
		return RecoveredError{Msg: fmt.Sprintf("recovered panic: %s", tr)}
	default:
		return RecoveredError{Msg: fmt.Sprintf("recovered panic from a value of type %T", v)}
	}
}
