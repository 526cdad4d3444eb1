// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(float64(value), 'f', -1, 32))
	}
}

func (cv *Cvar) Toggle() {
	if cv.Bool() {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.stringValue = value
	pf, _ := strconv.ParseFloat(value, 32)
	cv.value = float32(pf)
	cv.id = len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, fmt.Errorf("Can't register variable %s, already defined", name)
	}
	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		log.Panic(n)
	}
	return cv
}

// Set assigns value to the cvar called name. Unknown names create a user
// defined cvar, like the console "set" command does.
func Set(name, value string) {
	if cv, ok := cvarByName[name]; ok {
		cv.SetByString(value)
		return
	}
	cv := create(name, value)
	cv.user = true
}

// tokenize splits a config line into words. Double quotes group words
// containing spaces and // outside of quotes starts a comment.
func tokenize(line string) ([]string, error) {
	var toks []string
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c <= ' ':
			i++
		case strings.HasPrefix(line[i:], "//"):
			return toks, nil
		case c == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote")
			}
			toks = append(toks, line[i+1:i+1+end])
			i += end + 2
		default:
			j := i
			for j < len(line) && line[j] > ' ' && line[j] != '"' && !strings.HasPrefix(line[j:], "//") {
				j++
			}
			toks = append(toks, line[i:j])
			i = j
		}
	}
	return toks, nil
}

// LoadConfig reads lines of the form
//
//	name "value"
//	set name value
//
// Empty lines and // comments are skipped. Malformed lines are logged and
// skipped, the rest of the file still applies.
func LoadConfig(r io.Reader) error {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields, err := tokenize(s.Text())
		if err == nil && len(fields) == 0 {
			continue
		}
		if err == nil {
			if fields[0] == "set" || fields[0] == "seta" {
				fields = fields[1:]
			}
			if len(fields) != 2 {
				err = fmt.Errorf("want <cvar> <value>, got %d words", len(fields))
			}
		}
		if err != nil {
			slog.Warn("skipping config line", slog.Int("line", line), slog.String("text", s.Text()), slog.Any("err", err))
			continue
		}
		Set(fields[0], fields[1])
	}
	return s.Err()
}

// WriteArchive writes all archived cvars sorted by name in the format
// LoadConfig reads.
func WriteArchive(w io.Writer) error {
	var names []string
	for _, cv := range cvarArray {
		if cv.archive || cv.user {
			names = append(names, cv.name)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err := fmt.Fprintf(w, "%s \"%s\"\n", n, cvarByName[n].stringValue); err != nil {
			return err
		}
	}
	return nil
}
