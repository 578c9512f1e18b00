package fieldset

import (
	"slices"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/puzpuzpuz/xsync/v3"
)

// GrammarGeoPoint reads a geographic point written as `(lat,long)`.
const GrammarGeoPoint = "geo-point"

var grammars = xsync.NewMapOf[string, lexer.ValueGrammar]()

func init() {
	RegisterGrammar(GrammarGeoPoint, lexer.ValueGrammarFunc(lexGeoPoint))
}

// RegisterGrammar makes a value grammar available to configuration files by name.
func RegisterGrammar(name string, grammar lexer.ValueGrammar) {
	grammars.Store(name, grammar)
}

// GrammarByName returns a registered grammar.
func GrammarByName(name string) (lexer.ValueGrammar, error) {
	grammar, ok := grammars.Load(name)
	if !ok {
		return nil, errors.Errorf("unknown value grammar %q, registered grammars: %v", name, GrammarNames())
	}

	return grammar, nil
}

// GrammarNames returns the registered grammar names, sorted.
func GrammarNames() []string {
	var names []string

	grammars.Range(func(name string, _ lexer.ValueGrammar) bool {
		names = append(names, name)
		return true
	})

	slices.Sort(names)

	return names
}

func lexGeoPoint(l *lexer.Lexer, _ string) (string, error) {
	open, err := l.Expects("(")
	if err != nil {
		return "", err
	}

	point, err := l.Expects(`-?\d+(?:\.\d+)?,[\t\p{Zs}]*-?\d+(?:\.\d+)?`, "Geographic points 12,24")
	if err != nil {
		return "", err
	}

	closing, err := l.Expects(")")
	if err != nil {
		return "", err
	}

	return open + point + closing, nil
}
