package ansi

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tnguyen21/netscope/internal/theme"
)

// Run is a maximal span of text sharing one role.
type Run struct {
	Text string
	Role theme.Role
}

// state is the per-line SGR state. It never carries across lines.
type state struct {
	fg, bg theme.Role
}

func newState() state {
	return state{fg: theme.RoleNone, bg: theme.RoleNone}
}

// Decode splits one line into role-tagged runs. It never fails: an
// unterminated sequence at the end of the line is kept as literal text and
// CSI sequences other than SGR are dropped.
func Decode(line string) []Run {
	var (
		runs []Run
		cur  strings.Builder
		role = theme.RoleNone
		st   = newState()
	)
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, Run{Text: cur.String(), Role: role})
			cur.Reset()
		}
	}
	emit := func(r rune, rr theme.Role) {
		if rr != role {
			flush()
			role = rr
		}
		cur.WriteRune(r)
	}

	for i := 0; i < len(line); {
		if line[i] == ESC {
			if n, final, params, ok := scanCSI(line[i:]); ok {
				if final == 'm' {
					st.apply(params)
				}
				i += n
				continue
			}
			if i+1 < len(line) && line[i+1] == '[' {
				// unterminated CSI: the rest of the line is literal
				for _, r := range line[i:] {
					emit(r, st.textRole())
				}
				break
			}
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		i += size
		if r == ' ' && st.bg != theme.RoleNone {
			emit(BlockGlyph, st.bg)
			continue
		}
		emit(r, st.textRole())
	}
	flush()
	return runs
}

// scanCSI matches ESC [ params final at the start of s. n is the length of
// the whole sequence.
func scanCSI(s string) (n int, final byte, params string, ok bool) {
	if len(s) < 3 || s[0] != ESC || s[1] != '[' {
		return 0, 0, "", false
	}
	for j := 2; j < len(s); j++ {
		c := s[j]
		switch {
		case c >= 0x40 && c <= 0x7e:
			return j + 1, c, s[2:j], true
		case c >= 0x20 && c <= 0x3f:
			// parameter or intermediate byte
		default:
			return 0, 0, "", false
		}
	}
	return 0, 0, "", false
}

func (st *state) apply(params string) {
	if params == "" {
		*st = newState()
		return
	}
	fields := strings.Split(params, ";")
	for k := 0; k < len(fields); k++ {
		f := fields[k]
		if f == "" {
			*st = newState()
			continue
		}
		code, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		switch code {
		case Reset:
			*st = newState()
		case DefaultFG:
			st.fg = theme.RoleNone
		case DefaultBG:
			st.bg = theme.RoleNone
		case SetFG, SetBG:
			k += extendedLen(fields[k+1:])
		default:
			if role, isBG, ok := CodeRole(code); ok {
				if isBG {
					st.bg = role
				} else {
					st.fg = role
				}
			}
		}
	}
}

// extendedLen is how many parameters follow a 38 or 48 selector.
func extendedLen(rest []string) int {
	if len(rest) == 0 {
		return 0
	}
	switch rest[0] {
	case strconv.Itoa(extIndexed):
		return min(2, len(rest))
	case strconv.Itoa(extRGB):
		return min(4, len(rest))
	}
	return 0
}

func (st state) textRole() theme.Role {
	if st.fg == theme.RoleNone {
		return theme.RoleForeground
	}
	return st.fg
}

// Strip returns line with every CSI sequence removed, as Decode would show it.
func Strip(line string) string {
	var b strings.Builder
	for _, run := range Decode(line) {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Width is the number of cells a decoded line occupies.
func Width(line string) int {
	return utf8.RuneCountInString(Strip(line))
}
