package adapter

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// DefaultLiteralLimit is how many string and numeric literals form a pool.
const DefaultLiteralLimit = 5

// LiteralPool holds the substitution candidates for placeholder tokens at one
// source location, most relevant first.
type LiteralPool struct {
	Strings []string
	Numbers []string
}

// LiteralExtractor collects the literal pool near a source line.
type LiteralExtractor interface {
	// Extract ranks literals within window lines of line (1-based). A window
	// of zero considers the whole file.
	Extract(ctx context.Context, source []byte, line, window, limit int) (LiteralPool, error)
}

var javaNumberNodes = map[string]struct{}{
	"decimal_integer_literal":        {},
	"hex_integer_literal":            {},
	"octal_integer_literal":          {},
	"binary_integer_literal":         {},
	"decimal_floating_point_literal": {},
	"hex_floating_point_literal":     {},
}

const javaStringNode = "string_literal"

// JavaLiteralExtractor finds literals with tree-sitter's Java grammar.
//
// Thread Safety: safe for concurrent use, a parser is created per call.
type JavaLiteralExtractor struct{}

// NewJavaLiteralExtractor constructs a JavaLiteralExtractor.
func NewJavaLiteralExtractor() *JavaLiteralExtractor {
	return &JavaLiteralExtractor{}
}

type literalStat struct {
	text     string
	count    int
	distance int
	first    int
}

type literalCounter struct {
	line   int
	window int
	stats  map[string]*literalStat
	seen   int
}

func newLiteralCounter(line, window int) *literalCounter {
	return &literalCounter{line: line, window: window, stats: map[string]*literalStat{}}
}

func (c *literalCounter) add(text string, row int) {
	distance := row - c.line
	if distance < 0 {
		distance = -distance
	}

	if c.window > 0 && distance > c.window {
		return
	}

	stat, ok := c.stats[text]
	if !ok {
		stat = &literalStat{text: text, distance: distance, first: c.seen}
		c.stats[text] = stat
	}

	stat.count++
	if distance < stat.distance {
		stat.distance = distance
	}

	c.seen++
}

// top orders by frequency, then distance to the line, then first appearance.
func (c *literalCounter) top(limit int) []string {
	stats := make([]*literalStat, 0, len(c.stats))
	for _, stat := range c.stats {
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}

		if stats[i].distance != stats[j].distance {
			return stats[i].distance < stats[j].distance
		}

		return stats[i].first < stats[j].first
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}

	out := make([]string, 0, len(stats))
	for _, stat := range stats {
		out = append(out, stat.text)
	}

	return out
}

// Extract parses source and returns the top string and numeric literals.
func (e *JavaLiteralExtractor) Extract(ctx context.Context, source []byte, line, window, limit int) (LiteralPool, error) {
	if ctx.Err() != nil {
		return LiteralPool{}, ctx.Err()
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return LiteralPool{}, fmt.Errorf("parsing java: %w", err)
	}
	defer tree.Close()

	strs := newLiteralCounter(line, window)
	numbers := newLiteralCounter(line, window)

	e.walk(tree.RootNode(), source, strs, numbers)

	return LiteralPool{
		Strings: strs.top(limit),
		Numbers: numbers.top(limit),
	}, nil
}

func (e *JavaLiteralExtractor) walk(node *sitter.Node, source []byte, strs, numbers *literalCounter) {
	if node == nil {
		return
	}

	row := int(node.StartPoint().Row) + 1
	nodeType := node.Type()

	if nodeType == javaStringNode {
		strs.add(node.Content(source), row)
		return
	}

	if _, ok := javaNumberNodes[nodeType]; ok {
		numbers.add(node.Content(source), row)
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.walk(node.NamedChild(i), source, strs, numbers)
	}
}
