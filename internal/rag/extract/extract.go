package extract

import (
	"path/filepath"
	"strings"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/pkg/logger_i"
)

var logger *logger_i.Logger

func log() *logger_i.Logger {
	if logger == nil {
		logger = logger_i.NewLogger("Text Extraction")
	}
	return logger
}

type DocType string

const (
	PDF     DocType = "PDF"
	DocLike DocType = "DOC" //.docx, .txt, .rtf, .odt
	Unknown DocType = "UNKNOWN"
)

func TypeOf(path string) DocType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF
	case ".docx", ".txt", ".rtf", ".odt":
		return DocLike
	default:
		return Unknown
	}
}

// Text converts a source document into one plain-text string. It fails
// with an ExtractionError when no text is recoverable - including the
// scanned-image-only case where parsing succeeds but yields nothing.
func Text(path string, docName string) (string, error) {
	var text string
	var err error

	switch TypeOf(path) {
	case PDF:
		text, err = extractPDF(path)
	case DocLike:
		text, err = extractDocLike(path)
	default:
		return "", &docmodel.ExtractionError{Document: docName}
	}

	if err != nil {
		return "", &docmodel.ExtractionError{Document: docName, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		log().Warn("document parsed but produced no text", "document", docName)
		return "", &docmodel.ExtractionError{Document: docName}
	}
	return text, nil
}
