// Package csv provides conversion between extracted tables and Shape AST nodes.
package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ParseAST extracts the window selected by opts and returns it as an AST.
//
// Returns an *ast.ArrayDataNode with one *ast.ArrayDataNode per selected row,
// each holding one *ast.LiteralNode per selected field. Record and field
// positions refer to the source: the offset is the byte offset where the
// record starts, the line is the 1-based source row and the column is the
// 1-based source column of the field.
//
// Example:
//
//	node, err := csv.ParseAST(data, csv.WithStartRow(1))
//	if err != nil {
//	    // handle error
//	}
//	for _, record := range node.Elements() {
//	    // record is an *ast.ArrayDataNode
//	}
func ParseAST(data []byte, opts ...Option) (*ast.ArrayDataNode, error) {
	res, cfg, err := extract(data, opts)
	if err != nil {
		return nil, err
	}

	records := make([]ast.SchemaNode, len(res.Rows))
	for i, row := range res.Rows {
		line := cfg.window.StartRow + i + 1
		offset := res.Offsets[i]

		fields := make([]ast.SchemaNode, len(row))
		for j, field := range row {
			fields[j] = ast.NewLiteralNode(field, ast.NewPosition(offset, line, cfg.window.StartCol+j+1))
		}
		records[i] = ast.NewArrayDataNode(fields, ast.NewPosition(offset, line, cfg.window.StartCol+1))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// RecordsToNode converts a table to an AST node without source positions.
//
// Example:
//
//	records := [][]string{
//	    {"name", "age"},
//	    {"Alice", "30"},
//	}
//	node := csv.RecordsToNode(records)
func RecordsToNode(records [][]string) *ast.ArrayDataNode {
	nodes := make([]ast.SchemaNode, len(records))
	for i, record := range records {
		fields := make([]ast.SchemaNode, len(record))
		for j, field := range record {
			fields[j] = ast.NewLiteralNode(field, ast.ZeroPosition())
		}
		nodes[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(nodes, ast.ZeroPosition())
}

// NodeToRecords converts an AST produced by ParseAST or RecordsToNode back to
// a table. The node must be an *ast.ArrayDataNode of *ast.ArrayDataNode
// records holding *ast.LiteralNode fields with string values.
func NodeToRecords(node ast.SchemaNode) ([][]string, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	elements := arrayNode.Elements()
	records := make([][]string, len(elements))
	for i, elem := range elements {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}

		fieldNodes := recordNode.Elements()
		record := make([]string, len(fieldNodes))
		for j, fieldNode := range fieldNodes {
			literal, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("record %d, field %d: expected *ast.LiteralNode, got %T", i, j, fieldNode)
			}
			s, ok := literal.Value().(string)
			if !ok {
				return nil, fmt.Errorf("record %d, field %d: expected string value, got %T", i, j, literal.Value())
			}
			record[j] = s
		}
		records[i] = record
	}
	return records, nil
}
