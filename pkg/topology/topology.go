// Package topology parses and formats the text form of networks and
// partitions, e.g. "[5] [18] [7, 22, 49]" and "3 3 6".
package topology

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/itohio/rnet/pkg/network"
)

// Lexer tokenizes numbers and the bracket/separator punctuation.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "Punct", Pattern: `[\[\],|]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// networkAST is a series list of blocks, optionally separated by "|".
type networkAST struct {
	Blocks []*blockAST `@@ ( "|"? @@ )*`
}

// blockAST is one bracketed parallel block.
type blockAST struct {
	Values []float64 `"[" @Number ( ","? @Number )* "]"`
}

// partitionAST is a list of block sizes separated by spaces or commas.
type partitionAST struct {
	Sizes []int `@Number ( ","? @Number )*`
}

// Parser parses networks and partitions.
type Parser struct {
	network   *participle.Parser[networkAST]
	partition *participle.Parser[partitionAST]
}

// NewParser builds a Parser.
func NewParser() (*Parser, error) {
	np, err := participle.Build[networkAST](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build network parser: %w", err)
	}
	pp, err := participle.Build[partitionAST](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build partition parser: %w", err)
	}
	return &Parser{network: np, partition: pp}, nil
}

// Network parses and validates a network.
func (p *Parser) Network(input string) (network.Network, error) {
	ast, err := p.network.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	blocks := make([]network.Block, len(ast.Blocks))
	for i, b := range ast.Blocks {
		blocks[i] = network.Block(b.Values)
	}
	n, err := network.New(blocks...)
	if err != nil {
		return nil, fmt.Errorf("invalid network %q: %w", input, err)
	}
	return n, nil
}

// Partition parses a partition. Validation against a resistor count is left
// to the caller.
func (p *Parser) Partition(input string) (network.Partition, error) {
	ast, err := p.partition.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return network.Partition(ast.Sizes), nil
}

var defaultParser = sync.OnceValues(NewParser)

// ParseNetwork parses a network with the shared parser.
func ParseNetwork(input string) (network.Network, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.Network(input)
}

// ParsePartition parses a partition with the shared parser.
func ParsePartition(input string) (network.Partition, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.Partition(input)
}

// Format renders n in the syntax accepted by ParseNetwork.
func Format(n network.Network) string {
	blocks := make([]string, len(n))
	for i, b := range n {
		values := make([]string, len(b))
		for j, v := range b {
			values[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		blocks[i] = "[" + strings.Join(values, ", ") + "]"
	}
	return strings.Join(blocks, " ")
}
