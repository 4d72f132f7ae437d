// Package ztype implements the type registry: it parses textual type
// expressions and constructs zcol types through registered families.
package ztype

import (
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/zqe"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const DefaultCacheSize = 1024

// An Arg is one argument of a parameterized type expression.  Exactly
// one of Type or IsInt is set.
type Arg struct {
	Type  zcol.Type
	IsInt bool
	Int   int
}

// A Family constructs a type from its parsed arguments.  A family is
// invoked only for expressions written with parentheses.
type Family func(zctx *Context, args []Arg) (zcol.Type, error)

// A Context manages the set of type families available to type
// expressions and caches the result of parsing them.
type Context struct {
	mu       sync.RWMutex
	families map[string]Family
	cache    *lru.Cache[string, zcol.Type]
}

func NewContext() *Context {
	return NewContextWithCacheSize(DefaultCacheSize)
}

func NewContextWithCacheSize(size int) *Context {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, zcol.Type](size)
	if err != nil {
		panic(err)
	}
	c := &Context{
		families: make(map[string]Family),
		cache:    cache,
	}
	c.families["FixedString"] = newFixedString
	c.families["Optional"] = newOptional
	c.families["Array"] = newArray
	return c
}

// Register binds name to the family f.  Primitive type names and names
// already registered cannot be rebound.
func (c *Context) Register(name string, f Family) error {
	if name == "" || zcol.LookupPrimitive(name) != nil {
		return zqe.ErrInvalid("%w %q: primitive type name", zcol.ErrBadTypeName, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.families[name]; ok {
		return zqe.ErrExists("type family %q", name)
	}
	c.families[name] = f
	c.cache.Purge()
	return nil
}

func (c *Context) lookupFamily(name string) Family {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.families[name]
}

// LookupByName parses the type expression s and returns the type it
// denotes.
func (c *Context) LookupByName(s string) (zcol.Type, error) {
	if typ, ok := c.cache.Get(s); ok {
		return typ, nil
	}
	e, err := ParseExpr(s)
	if err != nil {
		return nil, zqe.ErrInvalid(err)
	}
	typ, err := c.LookupExpr(e)
	if err != nil {
		return nil, err
	}
	c.cache.Add(s, typ)
	return typ, nil
}

func (c *Context) MustLookupByName(s string) zcol.Type {
	typ, err := c.LookupByName(s)
	if err != nil {
		panic(err)
	}
	return typ
}

// LookupExpr constructs the type denoted by a parsed expression.
func (c *Context) LookupExpr(e *Expr) (zcol.Type, error) {
	if e.IsInt {
		return nil, zqe.ErrInvalid("integer %d is not a type", e.Int)
	}
	if !e.Call {
		if typ := zcol.LookupPrimitive(e.Name); typ != nil {
			return typ, nil
		}
		if c.lookupFamily(e.Name) != nil {
			return nil, zqe.E(zqe.ArgumentCount, "type %s requires arguments", e.Name)
		}
		return nil, c.noSuchType(e.Name)
	}
	if zcol.LookupPrimitive(e.Name) != nil {
		return nil, zqe.ErrInvalid("primitive type %s takes no arguments", e.Name)
	}
	family := c.lookupFamily(e.Name)
	if family == nil {
		return nil, c.noSuchType(e.Name)
	}
	args := make([]Arg, 0, len(e.Args))
	for _, a := range e.Args {
		if a.IsInt {
			args = append(args, Arg{IsInt: true, Int: a.Int})
			continue
		}
		typ, err := c.LookupExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, Arg{Type: typ})
	}
	return family(c, args)
}

// maxSuggestDistance bounds the edit distance of a suggested type name.
const maxSuggestDistance = 2

func (c *Context) noSuchType(name string) error {
	if suggestion := c.suggest(name); suggestion != "" {
		return zqe.ErrNotFound("no such type %q (did you mean %q?)", name, suggestion)
	}
	return zqe.ErrNotFound("no such type %q", name)
}

// suggest returns the known type or family name closest to name, or the
// empty string if none is close.  Names differing only in case always
// match.
func (c *Context) suggest(name string) string {
	var names []string
	for id := 0; id <= zcol.IDIP; id++ {
		names = append(names, zcol.LookupPrimitiveByID(id).String())
	}
	names = append(names, c.Families()...)
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return candidate
		}
		if d := levenshtein.ComputeDistance(candidate, name); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// CheckArgs returns an ArgumentCount error if args does not have n
// entries.
func CheckArgs(name string, args []Arg, n int) error {
	if len(args) != n {
		return zqe.E(zqe.ArgumentCount, "%s type must have %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// TypeArg returns the type of the k'th argument or an error if it is an
// integer literal.
func TypeArg(name string, args []Arg, k int) (zcol.Type, error) {
	if args[k].IsInt {
		return nil, zqe.E(zqe.IllegalType, "argument %d of %s must be a type, got %d", k+1, name, args[k].Int)
	}
	return args[k].Type, nil
}

func newFixedString(_ *Context, args []Arg) (zcol.Type, error) {
	if err := CheckArgs("FixedString", args, 1); err != nil {
		return nil, err
	}
	if !args[0].IsInt {
		return nil, zqe.E(zqe.IllegalType, "FixedString width must be an integer, got %s", args[0].Type)
	}
	typ, err := zcol.NewTypeFixedString(args[0].Int)
	if err != nil {
		return nil, zqe.ErrInvalid(err)
	}
	return typ, nil
}

func newOptional(_ *Context, args []Arg) (zcol.Type, error) {
	if err := CheckArgs("Optional", args, 1); err != nil {
		return nil, err
	}
	inner, err := TypeArg("Optional", args, 0)
	if err != nil {
		return nil, err
	}
	if zcol.IsOptional(inner) {
		return nil, zqe.E(zqe.IllegalType, "nested Optional type %s", inner)
	}
	return zcol.NewTypeOptional(inner), nil
}

func newArray(_ *Context, args []Arg) (zcol.Type, error) {
	if err := CheckArgs("Array", args, 1); err != nil {
		return nil, err
	}
	inner, err := TypeArg("Array", args, 0)
	if err != nil {
		return nil, err
	}
	return zcol.NewTypeArray(inner), nil
}

// Families returns the registered family names in sorted order.
func (c *Context) Families() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := maps.Keys(c.families)
	slices.Sort(names)
	return names
}
