package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

var ErrNoPayload = errors.New("record has no OCR result")

// Mode selects how a completed record is shown.
type Mode string

const (
	ModeFormatted Mode = "formatted"
	ModeRaw       Mode = "raw"
)

// ParseMode maps a query value to a Mode, defaulting to formatted.
func ParseMode(s string) Mode {
	if Mode(s) == ModeRaw {
		return ModeRaw
	}
	return ModeFormatted
}

// segment is one rendered unit: a table, a heading, a paragraph or a run of
// consecutive list items.
type segment struct {
	Kind  models.BlockKind
	Text  *models.TextBlock
	Items []models.TextBlock
	Table *models.Table
}

type rawView struct {
	Text      string
	Direction models.Direction
}

type cardView struct {
	Record      models.Record
	PreviewURL  string
	StatusLabel string
	Raw         bool
	RawView     rawView
	Segments    []segment
}

// segments projects blocks in document order.
func segments(blocks []models.Block) ([]segment, error) {
	out := make([]segment, 0, len(blocks))

	for i, b := range blocks {
		switch b.Kind {
		case models.KindTable:
			if b.Table == nil {
				return nil, fmt.Errorf("block %d: table without rows", i)
			}
			out = append(out, segment{Kind: b.Kind, Table: b.Table})
		case models.KindListItem:
			if b.Text == nil {
				return nil, fmt.Errorf("block %d: list item without text", i)
			}
			if n := len(out); n > 0 && out[n-1].Kind == models.KindListItem {
				out[n-1].Items = append(out[n-1].Items, *b.Text)
				continue
			}
			out = append(out, segment{Kind: b.Kind, Items: []models.TextBlock{*b.Text}})
		case models.KindParagraph, models.KindHeading:
			if b.Text == nil {
				return nil, fmt.Errorf("block %d: %s without text", i, b.Kind)
			}
			out = append(out, segment{Kind: b.Kind, Text: b.Text})
		default:
			return nil, fmt.Errorf("block %d: %w: %q", i, models.ErrUnknownBlock, b.Kind)
		}
	}
	return out, nil
}

func alignClass(d models.Direction) string {
	if d == models.DirectionRTL {
		return "text-right"
	}
	return "text-left"
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "Extraction Successful"
	case models.StatusError:
		return "Extraction Failed"
	case models.StatusProcessing:
		return "Processing..."
	default:
		return "Queued"
	}
}

func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Formatted writes the block view of a payload.
func Formatted(w io.Writer, p *models.Payload) error {
	if p == nil {
		return ErrNoPayload
	}
	segs, err := segments(p.Blocks)
	if err != nil {
		return err
	}
	return execute(w, "formatted", segs)
}

// Raw writes rawText verbatim with a direction detected from its content.
func Raw(w io.Writer, p *models.Payload) error {
	if p == nil {
		return ErrNoPayload
	}
	return execute(w, "raw", rawView{Text: p.RawText, Direction: DetectDirection(p.RawText)})
}

// Card writes the full record view: header plus a body that depends on the
// record status and, once completed, on mode.
func Card(w io.Writer, rec models.Record, mode Mode, previewURL string) error {
	view := cardView{
		Record:      rec,
		PreviewURL:  previewURL,
		StatusLabel: statusLabel(rec.Status),
		Raw:         mode == ModeRaw,
	}

	if rec.Status == models.StatusCompleted && rec.Payload != nil {
		view.RawView = rawView{Text: rec.Payload.RawText, Direction: DetectDirection(rec.Payload.RawText)}
		if !view.Raw {
			segs, err := segments(rec.Payload.Blocks)
			if err != nil {
				return err
			}
			view.Segments = segs
		}
	}
	return execute(w, "card", view)
}

// Export writes a standalone HTML document holding the formatted view.
func Export(w io.Writer, rec models.Record) error {
	if rec.Payload == nil {
		return ErrNoPayload
	}
	segs, err := segments(rec.Payload.Blocks)
	if err != nil {
		return err
	}
	return execute(w, "export", struct {
		Title    string
		Segments []segment
	}{rec.FileName, segs})
}

// ExportFileName is the download name of an exported record.
func ExportFileName(fileName string) string {
	if fileName == "" {
		fileName = "document"
	}
	return fileName + "-extracted.html"
}
