/*
 * interfaces.go, part of gotrex.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goTrex is developed as a companion to goChem
 * (https://github.com/rmera/gochem).
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package trex

//Errors

//Error is the interface for errors that the packages in this library implement.
//The Decorate method allows to add and retrieve info from the error, without
//changing its type or wrapping it around something else. If passed an empty
//string it just returns the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

//The failure kinds of this package. A conversion either fully completes
//or fails with one of these; there is no partial-success mode.
const (
	//A feature of the input (or of the file) that the format, or this
	//library, does not cover. Never silently worked around.
	UnsupportedFeature = "unsupported feature"
	//A broken invariant in the input data or the file, e.g. unsorted
	//grouping keys. Indicates caller misuse or a corrupt file.
	PreconditionViolation = "precondition violation"
	//Export was called on something that is neither a system nor a
	//wavefunction.
	UnknownInputType = "unknown input type"
)

//CError is the concrete error type of the trex package. It fulfills
//the Error interface and carries one of the failure kinds above.
type CError struct {
	message string
	kind    string
	deco    []string
}

func (err CError) Error() string { return err.message }

//Kind returns the failure kind of the error, one of UnsupportedFeature,
//PreconditionViolation or UnknownInputType.
func (err CError) Kind() string { return err.kind }

func (err CError) Decorate(deco string) []string {
	//this method does not use a pointer receiver, but err.deco is a slice,
	//hence a pointer itself, so appending works.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func notImplemented(what, caller string) CError {
	return CError{what + " is not implemented", UnsupportedFeature, []string{caller}}
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
