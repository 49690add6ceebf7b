package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownBlock     = errors.New("unknown block type")
	ErrInvalidDirection = errors.New("invalid text direction")
	ErrMalformedPayload = errors.New("malformed OCR payload")
)

// BlockKind discriminates the Block variants.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindListItem  BlockKind = "list-item"
	KindTable     BlockKind = "table"
)

// Direction is the reading direction of a text block.
type Direction string

const (
	DirectionRTL Direction = "rtl"
	DirectionLTR Direction = "ltr"
)

// Cell is one table cell.
type Cell struct {
	Content  string `json:"content"`
	IsHeader bool   `json:"isHeader"`
	ColSpan  int    `json:"colSpan,omitempty"`
	RowSpan  int    `json:"rowSpan,omitempty"`
}

// Row is one table row. Rows of one table may differ in length.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Table is the table variant of Block.
type Table struct {
	Title string `json:"title,omitempty"`
	Rows  []Row  `json:"rows"`
}

// TextBlock is the paragraph/heading/list-item variant of Block.
type TextBlock struct {
	Content   string    `json:"content"`
	Direction Direction `json:"alignment"`
}

// Block is a tagged union: Text is set for paragraph, heading and list-item,
// Table is set for table. Exactly one of them is non-nil.
type Block struct {
	Kind  BlockKind
	Text  *TextBlock
	Table *Table
}

func NewTextBlock(kind BlockKind, content string, dir Direction) Block {
	return Block{Kind: kind, Text: &TextBlock{Content: content, Direction: dir}}
}

func NewTableBlock(title string, rows ...Row) Block {
	return Block{Kind: KindTable, Table: &Table{Title: title, Rows: rows}}
}

// wireBlock mirrors the JSON shape requested from the model.
type wireBlock struct {
	Type      BlockKind `json:"type"`
	Content   string    `json:"content,omitempty"`
	Alignment Direction `json:"alignment,omitempty"`
	Title     string    `json:"title,omitempty"`
	Rows      []Row     `json:"rows,omitempty"`
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch w.Type {
	case KindParagraph, KindHeading, KindListItem:
		dir, err := parseDirection(w.Alignment)
		if err != nil {
			return err
		}
		*b = NewTextBlock(w.Type, w.Content, dir)
	case KindTable:
		rows := w.Rows
		if rows == nil {
			rows = []Row{}
		}
		*b = NewTableBlock(w.Title, rows...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlock, w.Type)
	}
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	w := wireBlock{Type: b.Kind}

	switch b.Kind {
	case KindParagraph, KindHeading, KindListItem:
		if b.Text == nil {
			return nil, fmt.Errorf("%s block without text", b.Kind)
		}
		w.Content = b.Text.Content
		w.Alignment = b.Text.Direction
	case KindTable:
		if b.Table == nil {
			return nil, errors.New("table block without rows")
		}
		rows := b.Table.Rows
		if rows == nil {
			rows = []Row{}
		}
		// rows is always emitted, even when empty
		return json.Marshal(struct {
			Type  BlockKind `json:"type"`
			Title string    `json:"title,omitempty"`
			Rows  []Row     `json:"rows"`
		}{KindTable, b.Table.Title, rows})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, b.Kind)
	}
	return json.Marshal(w)
}

// parseDirection accepts rtl and ltr. A missing direction falls back to ltr.
func parseDirection(d Direction) (Direction, error) {
	switch d {
	case DirectionRTL, DirectionLTR:
		return d, nil
	case "":
		return DirectionLTR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}
}

// ParsePayload decodes a model reply. Both blocks and rawText must be present;
// any block that does not match a known variant fails the whole payload.
func ParsePayload(data []byte) (*Payload, error) {
	var wire struct {
		Blocks  *[]Block `json:"blocks"`
		RawText *string  `json:"rawText"`
	}

	// the whole reply must be one JSON value; trailing text is malformed
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if wire.Blocks == nil || wire.RawText == nil {
		return nil, fmt.Errorf("%w: blocks and rawText are required", ErrMalformedPayload)
	}

	return &Payload{Blocks: *wire.Blocks, RawText: *wire.RawText}, nil
}
