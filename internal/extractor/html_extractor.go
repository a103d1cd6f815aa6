package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// HTMLExtractor reduces an HTML document to its visible text so two pages
// can be compared by content rather than markup.
type HTMLExtractor struct {
	logger zerolog.Logger
}

// NewHTMLExtractor creates a new HTML extractor.
func NewHTMLExtractor(logger zerolog.Logger) *HTMLExtractor {
	return &HTMLExtractor{
		logger: logger.With().Str("component", "HTMLExtractor").Logger(),
	}
}

// ExtractText parses the document, strips script and style elements, and
// returns the visible text with one line per top-level text run.
func (e *HTMLExtractor) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to parse HTML document")
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	lines := make([]string, 0, 64)
	for _, raw := range strings.Split(root.Text(), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	e.logger.Debug().Int("lines", len(lines)).Msg("Extracted visible text from HTML")
	return strings.Join(lines, "\n"), nil
}
