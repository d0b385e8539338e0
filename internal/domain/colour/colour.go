package colour

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set is a bitmask over the five Magic colours.
type Set uint8

const (
	White Set = 1 << iota
	Blue
	Black
	Red
	Green

	None Set = 0
	All  Set = White | Blue | Black | Red | Green
)

// Universe is every defined colour in canonical WUBRG order.
var Universe = []Set{White, Blue, Black, Red, Green}

var nameToFlag = map[string]Set{
	"white": White,
	"blue":  Blue,
	"black": Black,
	"red":   Red,
	"green": Green,
}

var codeToFlag = map[string]Set{
	"w": White,
	"u": Blue,
	"b": Black,
	"r": Red,
	"g": Green,
}

var flagToName = map[Set]string{
	White: "white",
	Blue:  "blue",
	Black: "black",
	Red:   "red",
	Green: "green",
}

var flagToCode = map[Set]string{
	White: "w",
	Blue:  "u",
	Black: "b",
	Red:   "r",
	Green: "g",
}

// UnknownColourError is returned when a colour name or code has no flag.
type UnknownColourError struct {
	Token string
}

func (e *UnknownColourError) Error() string {
	return fmt.Sprintf("unknown colour %q", e.Token)
}

// NamesToFlags converts colour names ("white", "Blue", ...) into a Set.
func NamesToFlags(names []string) (Set, error) {
	return lookup(names, nameToFlag)
}

// CodesToFlags converts colour codes ("w", "U", ...) into a Set.
func CodesToFlags(codes []string) (Set, error) {
	return lookup(codes, codeToFlag)
}

func lookup(tokens []string, table map[string]Set) (Set, error) {
	var flags Set
	for _, token := range tokens {
		flag, ok := table[strings.ToLower(token)]
		if !ok {
			return None, &UnknownColourError{Token: token}
		}
		flags |= flag
	}
	return flags, nil
}

// ParseSelection turns user tokens into an ordered colour selection. Each
// token may be a colour name or a single-letter code; "colourless" and "c"
// select None.
func ParseSelection(tokens []string) ([]Set, error) {
	selection := make([]Set, 0, len(tokens))
	for _, token := range tokens {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if t == "colourless" || t == "colorless" || t == "c" {
			selection = append(selection, None)
			continue
		}
		if flag, ok := nameToFlag[t]; ok {
			selection = append(selection, flag)
			continue
		}
		if flag, ok := codeToFlag[t]; ok {
			selection = append(selection, flag)
			continue
		}
		return nil, &UnknownColourError{Token: token}
	}
	return selection, nil
}

// Has reports whether every bit of other is present in s.
func (s Set) Has(other Set) bool {
	return s&other == other
}

// Count returns the number of colours in s.
func (s Set) Count() int {
	return bits.OnesCount8(uint8(s & All))
}

// Colours splits s into its single-colour flags in WUBRG order.
func (s Set) Colours() []Set {
	out := make([]Set, 0, s.Count())
	for _, c := range Universe {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the lowercase colour names of s in WUBRG order.
func (s Set) Names() []string {
	out := make([]string, 0, s.Count())
	for _, c := range s.Colours() {
		out = append(out, flagToName[c])
	}
	return out
}

// Codes returns the single-letter colour codes of s in WUBRG order.
func (s Set) Codes() []string {
	out := make([]string, 0, s.Count())
	for _, c := range s.Colours() {
		out = append(out, flagToCode[c])
	}
	return out
}

func (s Set) String() string {
	if s&All == None {
		return "c"
	}
	return strings.Join(s.Codes(), "")
}
