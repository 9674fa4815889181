package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/tilegen/serializer"
)

type PixelMapTokenKind string

const (
	PixelRowToken = PixelMapTokenKind("row")
	CommentToken  = PixelMapTokenKind("comment")
)

// PixelMapToken is a single line of a pixel map.  Row values contain only
// '.' and lower case hex digits.
type PixelMapToken struct {
	Kind PixelMapTokenKind
	parseutil.StartEndPos
	Value string
}

func (token *PixelMapToken) String() string {
	return fmt.Sprintf("%s %v: %q", token.Kind, token.Loc(), token.Value)
}

// invalidPixelError is a row error after which lexing can resume on the next
// line.
type invalidPixelError struct {
	error
}

func (err invalidPixelError) Unwrap() error {
	return err.error
}

// PixelMapLexer tokenizes the text pixel map format:
//
//	# comment
//	..12..
//	.3443.
//
// One character per pixel; '.' is transparent and 0-9 / a-f are palette
// indices.  Spaces and tabs are ignored, as are blank lines.
type PixelMapLexer struct {
	parseutil.BufferedByteLocationReader
}

func NewPixelMapLexer(
	reader parseutil.BufferedByteLocationReader,
) *PixelMapLexer {
	return &PixelMapLexer{
		BufferedByteLocationReader: reader,
	}
}

func (lexer *PixelMapLexer) CurrentLocation() parseutil.Location {
	return lexer.Location
}

func (lexer *PixelMapLexer) peekByte() (byte, error) {
	peeked, err := lexer.Peek(1)
	if len(peeked) > 0 {
		return peeked[0], nil
	}

	if err == nil {
		err = io.EOF
	}
	return 0, err
}

func (lexer *PixelMapLexer) discardByte() {
	_, err := lexer.Discard(1)
	if err != nil {
		panic("should never happen")
	}
}

// readLine consumes the rest of the current line, excluding the newline.
func (lexer *PixelMapLexer) readLine() (string, error) {
	line := []byte{}
	for {
		char, err := lexer.peekByte()
		if err == io.EOF {
			return string(line), nil
		} else if err != nil {
			return "", err
		}

		if char == '\n' || char == '\r' {
			return string(line), nil
		}

		lexer.discardByte()
		line = append(line, char)
	}
}

func pixelChar(char byte) (byte, bool) {
	switch {
	case char == '.':
		return char, true
	case '0' <= char && char <= '9', 'a' <= char && char <= 'f':
		return char, true
	case 'A' <= char && char <= 'F':
		return char - 'A' + 'a', true
	}
	return 0, false
}

func (lexer *PixelMapLexer) lexRow() (*PixelMapToken, error) {
	start := lexer.Location

	row := []byte{}
	for {
		char, err := lexer.peekByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if char == '\n' || char == '\r' {
			break
		}

		if char == ' ' || char == '\t' {
			lexer.discardByte()
			continue
		}

		pixel, ok := pixelChar(char)
		if !ok {
			loc := lexer.Location

			// Skip the remainder of the row so that lexing can resume on the
			// next line.
			_, err := lexer.readLine()
			if err != nil {
				return nil, err
			}

			return nil, invalidPixelError{
				parseutil.NewLocationError(
					loc,
					"unexpected pixel character %q",
					char),
			}
		}

		lexer.discardByte()
		row = append(row, pixel)
	}

	return &PixelMapToken{
		Kind:        PixelRowToken,
		StartEndPos: parseutil.NewStartEndPos(start, lexer.Location),
		Value:       string(row),
	}, nil
}

// Next returns io.EOF once the input is exhausted.
func (lexer *PixelMapLexer) Next() (*PixelMapToken, error) {
	for {
		char, err := lexer.peekByte()
		if err != nil {
			return nil, err
		}

		switch char {
		case '\n', '\r', ' ', '\t':
			lexer.discardByte()
			continue
		case '#':
			start := lexer.Location
			lexer.discardByte()

			comment, err := lexer.readLine()
			if err != nil {
				return nil, err
			}

			return &PixelMapToken{
				Kind:        CommentToken,
				StartEndPos: parseutil.NewStartEndPos(start, lexer.Location),
				Value:       comment,
			}, nil
		}

		return lexer.lexRow()
	}
}

func rowIndices(row string) []serializer.PaletteIndex {
	indices := make([]serializer.PaletteIndex, 0, len(row))
	for _, char := range []byte(row) {
		switch {
		case char == '.':
			indices = append(indices, serializer.Transparent)
		case '0' <= char && char <= '9':
			indices = append(indices, serializer.PaletteIndex(char-'0'))
		default:
			indices = append(indices, serializer.PaletteIndex(char-'a'+10))
		}
	}
	return indices
}

// ParsePixelMap reads a pixel map.  Errors are reported to emitter; the
// returned grid is nil when any error is found.
func ParsePixelMap(
	reader parseutil.BufferedByteLocationReader,
	emitter *parseutil.Emitter,
) *serializer.PixelGrid {
	lexer := NewPixelMapLexer(reader)

	rows := [][]serializer.PaletteIndex{}
	failed := false
	for {
		token, err := lexer.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			emitter.EmitErrors(err)
			failed = true

			var invalid invalidPixelError
			if errors.As(err, &invalid) {
				continue
			}
			break
		}

		if token.Kind != PixelRowToken {
			continue
		}

		if len(rows) > 0 && len(token.Value) != len(rows[0]) {
			emitter.Emit(
				token.Loc(),
				"row width %d does not match first row width %d",
				len(token.Value),
				len(rows[0]))
			failed = true
			continue
		}

		rows = append(rows, rowIndices(token.Value))
	}

	if failed {
		return nil
	}

	return serializer.NewPixelGridFromRows(rows)
}

func LoadPixelMap(path string) (*serializer.PixelGrid, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	emitter := &parseutil.Emitter{}
	grid := ParsePixelMap(
		parseutil.NewBufferedByteLocationReaderFromSlice(path, content),
		emitter)

	errs := emitter.Errors()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return grid, nil
}
