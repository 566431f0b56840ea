/*
 * tio.go, part of gotrex.
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

//Package tio implements the container file behind the trex codecs: a
//store of named, typed, flat array attributes. Two physical backends
//share one token-oriented encoding; the binary one runs it through a
//zstd compressor, the text one leaves it readable. The backend changes
//nothing about the data model, only the bytes on disk.
package tio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const magic = "gotrex"
const formatVersion = 1

//value kinds, as spelled in the files
const (
	kindInt   = "int"
	kindFloat = "float"
	kindStr   = "str"
)

type attribute struct {
	kind   string
	ints   []int
	floats []float64
	strs   []string
}

//File is a handle on a container file. Attributes written to it are kept
//in memory and flushed as a whole when the handle is closed; reads are
//served from the parse done at Open. A File is not safe for concurrent
//use, and two processes must not write the same file.
type File struct {
	name      string
	backend   string
	level     zstd.EncoderLevel
	attrs     map[string]*attribute
	order     []string //emission order, so files are deterministic
	writeable bool
	readable  bool
	err       error //first write-side error, reported by Close
}

//Open opens the container file name. Mode is "r" (read), "w" (write a
//fresh file) or "u" (update: load what is there, if anything, and allow
//writes). The backend selector picks the physical layout: "text" for the
//plain variant, "zstd" (or empty) for the compressed binary one.
//For the compressed backend, compressionLevel (1-22, zstd convention)
//overrides the default of best compression; it is ignored otherwise.
func Open(name, mode, backend string, compressionLevel ...int) (*File, error) {
	switch backend {
	case "", "zstd", "text":
	default:
		return nil, Error{"unknown backend " + backend, name, []string{"Open"}, true}
	}
	F := &File{name: name, backend: backend, attrs: make(map[string]*attribute)}
	F.level = zstd.SpeedBestCompression
	if len(compressionLevel) > 0 {
		F.level = zstd.EncoderLevelFromZstd(compressionLevel[0])
	}
	switch mode {
	case "w":
		F.writeable = true
	case "r":
		F.readable = true
		if err := F.load(); err != nil {
			return nil, err
		}
	case "u":
		F.writeable = true
		F.readable = true
		if _, err := os.Stat(name); err == nil {
			if err := F.load(); err != nil {
				return nil, err
			}
		}
	default:
		return nil, Error{"unknown mode " + mode, name, []string{"Open"}, true}
	}
	return F, nil
}

//a zstd.Decoder is not an io.ReadCloser by itself, as its Close returns
//nothing. Same workaround as goChem's stf reader.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

func (F *File) load() error {
	f, err := os.Open(F.name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), F.name, []string{"load"}, true}
	}
	defer f.Close()
	var h io.ReadCloser
	if F.backend == "text" {
		h = io.NopCloser(bufio.NewReader(f))
	} else {
		r, err := zstd.NewReader(f)
		if err != nil {
			return Error{err.Error(), F.name, []string{"load"}, true}
		}
		h = zstdql{r.Close, r}
	}
	defer h.Close()
	if err := F.parse(h); err != nil {
		return err
	}
	return nil
}

func (F *File) parse(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !sc.Scan() {
			if sc.Err() != nil {
				return "", Error{sc.Err().Error(), F.name, []string{"parse"}, true}
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
	tok, err := next()
	if err != nil || tok != magic {
		return Error{NotAContainer, F.name, []string{"parse"}, true}
	}
	if tok, err = next(); err != nil || tok != strconv.Itoa(formatVersion) {
		return Error{"unknown format version", F.name, []string{"parse"}, true}
	}
	for {
		name, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		kind, err := next()
		if err != nil {
			return Error{Truncated, F.name, []string{"parse"}, true}
		}
		counttok, err := next()
		if err != nil {
			return Error{Truncated, F.name, []string{"parse"}, true}
		}
		count, err := strconv.Atoi(counttok)
		if err != nil || count < 0 {
			return Error{"bad attribute count for " + name, F.name, []string{"parse"}, true}
		}
		a := &attribute{kind: kind}
		for i := 0; i < count; i++ {
			v, err := next()
			if err != nil {
				return Error{Truncated, F.name, []string{"parse"}, true}
			}
			switch kind {
			case kindInt:
				n, err := strconv.Atoi(v)
				if err != nil {
					return Error{fmt.Sprintf("bad integer %q in %s", v, name), F.name, []string{"parse"}, true}
				}
				a.ints = append(a.ints, n)
			case kindFloat:
				x, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return Error{fmt.Sprintf("bad float %q in %s", v, name), F.name, []string{"parse"}, true}
				}
				a.floats = append(a.floats, x)
			case kindStr:
				a.strs = append(a.strs, v)
			default:
				return Error{fmt.Sprintf("unknown kind %q for %s", kind, name), F.name, []string{"parse"}, true}
			}
		}
		F.put(name, a)
	}
}

func (F *File) put(name string, a *attribute) {
	if _, ok := F.attrs[name]; !ok {
		F.order = append(F.order, name)
	}
	F.attrs[name] = a
}

//Close flushes pending writes, if the file was open for writing, and
//invalidates the handle. It reports the first error recorded by any
//Write call on the handle.
func (F *File) Close() error {
	if F == nil {
		return nil
	}
	defer func() { F.writeable = false; F.readable = false }()
	if !F.writeable {
		return nil
	}
	if F.err != nil {
		return F.err
	}
	f, err := os.Create(F.name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), F.name, []string{"Close"}, true}
	}
	var h io.WriteCloser
	if F.backend == "text" {
		h = f //closed below through f
	} else {
		h, err = zstd.NewWriter(f, zstd.WithEncoderLevel(F.level))
		if err != nil {
			f.Close()
			return Error{err.Error(), F.name, []string{"Close"}, true}
		}
	}
	w := bufio.NewWriter(h)
	fmt.Fprintf(w, "%s %d\n", magic, formatVersion)
	for _, name := range F.order {
		a := F.attrs[name]
		n := len(a.ints) + len(a.floats) + len(a.strs)
		fmt.Fprintf(w, "%s %s %d\n", name, a.kind, n)
		switch a.kind {
		case kindInt:
			writeTokens(w, len(a.ints), func(i int) string { return strconv.Itoa(a.ints[i]) })
		case kindFloat:
			writeTokens(w, len(a.floats), func(i int) string { return strconv.FormatFloat(a.floats[i], 'E', -1, 64) })
		case kindStr:
			writeTokens(w, len(a.strs), func(i int) string { return a.strs[i] })
		}
	}
	err = w.Flush()
	if F.backend != "text" {
		if err2 := h.Close(); err == nil {
			err = err2
		}
	}
	if err2 := f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{err.Error(), F.name, []string{"Close"}, true}
	}
	return nil
}

//Abort invalidates the handle without flushing, dropping every buffered
//write. A pre-existing file stays as it was; a fresh one is never
//created. For a failed conversion this leaves no partial file behind.
func (F *File) Abort() {
	if F == nil {
		return
	}
	F.writeable = false
	F.readable = false
}

//eight values per line keeps the text backend diffable without hurting
//the compressed one.
func writeTokens(w io.Writer, n int, tok func(int) string) {
	for i := 0; i < n; i++ {
		sep := " "
		if i%8 == 7 || i == n-1 {
			sep = "\n"
		}
		fmt.Fprintf(w, "%s%s", tok(i), sep)
	}
}

//Has tells whether the named attribute is present in the file.
func (F *File) Has(attr string) bool {
	_, ok := F.attrs[attr]
	return ok
}

func (F *File) fail(msg string) {
	if F.err == nil {
		F.err = Error{msg, F.name, nil, true}
	}
}

//WriteInts stores an integer array attribute. Like all Write methods it
//records, rather than returns, failures: the first one surfaces when the
//handle is closed.
func (F *File) WriteInts(attr string, v []int) {
	if !F.writeable {
		F.fail(NotWriteable + " " + attr)
		return
	}
	F.put(attr, &attribute{kind: kindInt, ints: append([]int{}, v...)})
}

//WriteInt stores a scalar integer attribute.
func (F *File) WriteInt(attr string, v int) {
	F.WriteInts(attr, []int{v})
}

//WriteFloats stores a real array attribute.
func (F *File) WriteFloats(attr string, v []float64) {
	if !F.writeable {
		F.fail(NotWriteable + " " + attr)
		return
	}
	F.put(attr, &attribute{kind: kindFloat, floats: append([]float64{}, v...)})
}

//WriteStrs stores a string array attribute. The strings may not contain
//whitespace; the encoding is token-oriented.
func (F *File) WriteStrs(attr string, v []string) {
	if !F.writeable {
		F.fail(NotWriteable + " " + attr)
		return
	}
	for _, s := range v {
		if s == "" || strings.ContainsAny(s, " \t\n") {
			F.fail(fmt.Sprintf("string attribute %s holds an empty or whitespace-carrying value %q", attr, s))
			return
		}
	}
	F.put(attr, &attribute{kind: kindStr, strs: append([]string{}, v...)})
}

//WriteStr stores a scalar string attribute.
func (F *File) WriteStr(attr string, v string) {
	F.WriteStrs(attr, []string{v})
}

func (F *File) get(attr, kind string) (*attribute, error) {
	if !F.readable {
		return nil, Error{NotReadable, F.name, []string{"get"}, true}
	}
	a, ok := F.attrs[attr]
	if !ok {
		return nil, Error{"no attribute " + attr, F.name, []string{"get"}, true}
	}
	if a.kind != kind {
		return nil, Error{fmt.Sprintf("attribute %s holds %s values, not %s", attr, a.kind, kind), F.name, []string{"get"}, true}
	}
	return a, nil
}

//ReadInts returns an integer array attribute.
func (F *File) ReadInts(attr string) ([]int, error) {
	a, err := F.get(attr, kindInt)
	if err != nil {
		return nil, err
	}
	return append([]int{}, a.ints...), nil
}

//ReadInt returns a scalar integer attribute.
func (F *File) ReadInt(attr string) (int, error) {
	v, err := F.ReadInts(attr)
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, Error{fmt.Sprintf("attribute %s holds %d values, wanted a scalar", attr, len(v)), F.name, []string{"ReadInt"}, true}
	}
	return v[0], nil
}

//ReadFloats returns a real array attribute.
func (F *File) ReadFloats(attr string) ([]float64, error) {
	a, err := F.get(attr, kindFloat)
	if err != nil {
		return nil, err
	}
	return append([]float64{}, a.floats...), nil
}

//ReadStrs returns a string array attribute.
func (F *File) ReadStrs(attr string) ([]string, error) {
	a, err := F.get(attr, kindStr)
	if err != nil {
		return nil, err
	}
	return append([]string{}, a.strs...), nil
}

//ReadStr returns a scalar string attribute.
func (F *File) ReadStr(attr string) (string, error) {
	v, err := F.ReadStrs(attr)
	if err != nil {
		return "", err
	}
	if len(v) != 1 {
		return "", Error{fmt.Sprintf("attribute %s holds %d values, wanted a scalar", attr, len(v)), F.name, []string{"ReadStr"}, true}
	}
	return v[0], nil
}

//Errors

const (
	UnableToOpen  = "unable to open file"
	NotAContainer = "not a gotrex container"
	Truncated     = "truncated file"
	NotWriteable  = "file not open for writing:"
	NotReadable   = "file not open for reading"
)

//Error is the error type for container files. It fulfills trex.Error.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("tio file %s error: %s", err.filename, err.message)
}

func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "tio" }

func (err Error) Critical() bool { return err.critical }
