package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/faneaatiku/cosmos-json/internal/errors" // Custom errors package
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// MaxNestingDepth is the deepest container nesting Parse accepts. It matches
// the limit encoding/json applies when unmarshalling.
const MaxNestingDepth = 10000

// Parse reads exactly one JSON document from reader. Object members keep the
// order they have in the source text and numbers keep their literal form.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	root, err := decodeValue(decoder, 0)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, toParsingError(err)
	}

	// Anything other than EOF after the first value is either a second document
	// or garbage.
	if _, err := decoder.Token(); err != io.EOF {
		if err != nil {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return root, nil
}

func toParsingError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// decodeValue consumes one complete value from the token stream. io.EOF is
// only returned when the stream ends before the value starts. depth counts the
// containers already open around the value.
func decodeValue(decoder *json.Decoder, depth int) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if (t == '{' || t == '[') && depth >= MaxNestingDepth {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON nesting too deep (limit %d)", MaxNestingDepth),
				errors.ErrInvalidJSON,
			)
		}
		switch t {
		case '{':
			return decodeObject(decoder, depth+1)
		case '[':
			return decodeArray(decoder, depth+1)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q: %w", t, errors.ErrInvalidJSON)
		}
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v: %w", t, errors.ErrInvalidJSON)
	}
}

func decodeObject(decoder *json.Decoder, depth int) (models.Value, error) {
	var members []models.Member
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v: %w", keyTok, errors.ErrInvalidJSON)
		}
		val, err := decodeValue(decoder, depth)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		members = append(members, models.Member{Key: key, Value: val})
	}
	if err := closeDelim(decoder); err != nil {
		return nil, err
	}
	return models.NewObject(members...), nil
}

func decodeArray(decoder *json.Decoder, depth int) (models.Value, error) {
	arr := models.Array{}
	for decoder.More() {
		val, err := decodeValue(decoder, depth)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		arr = append(arr, val)
	}
	if err := closeDelim(decoder); err != nil {
		return nil, err
	}
	return arr, nil
}

func closeDelim(decoder *json.Decoder) error {
	if _, err := decoder.Token(); err != nil {
		return unexpectedEOF(err)
	}
	return nil
}

// unexpectedEOF turns an EOF met inside a container into a truncation error.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
